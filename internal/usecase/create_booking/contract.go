package create_booking

import (
	"context"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/internal/service/credentials"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetConfirmationSent(ctx context.Context, id int64) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// TrailerRepository интерфейс репозитория прицепов
type TrailerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Trailer, error)
}

// AvailabilityChecker интерфейс проверки доступности прицепа
type AvailabilityChecker interface {
	Check(ctx context.Context, trailerID int64, startDate, endDate time.Time, excludeBookingID *int64) (*availability.Result, error)
}

// CredentialsIssuer интерфейс выдачи учетных данных бронирования
type CredentialsIssuer interface {
	Issue() (*credentials.Credentials, error)
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	Send(ctx context.Context, kind, recipient string, data map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
