package trailers

import (
	"context"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// TrailerRepository интерфейс репозитория прицепов
type TrailerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trailer, error)
	ListActive(ctx context.Context) ([]*domain.Trailer, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
