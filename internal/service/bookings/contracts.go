package bookings

import (
	"context"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRentalID(ctx context.Context, rentalID string) (*domain.Booking, error)
	SetApproved(ctx context.Context, id int64, paymentLink string) error
	SetPaid(ctx context.Context, id int64) error
	SetClosed(ctx context.Context, id int64, outcome domain.CloseOutcome, reason *string) error
	SetRejected(ctx context.Context, id int64, reason *string) error
	UpdateDates(ctx context.Context, id int64, startDate, endDate time.Time) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// AvailabilityChecker интерфейс проверки доступности прицепа
type AvailabilityChecker interface {
	Check(ctx context.Context, trailerID int64, startDate, endDate time.Time, excludeBookingID *int64) (*availability.Result, error)
}

// CredentialsVerifier интерфейс проверки ключа доступа
type CredentialsVerifier interface {
	Verify(accessKeyHash, suppliedKey string) error
}

// Notifier интерфейс отправки уведомлений клиенту.
// Отправка best-effort: ошибка логируется вызывающей стороной и
// никогда не влияет на результат перехода статуса.
type Notifier interface {
	Send(ctx context.Context, kind, recipient string, data map[string]interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
