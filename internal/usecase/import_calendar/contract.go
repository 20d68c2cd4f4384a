package import_calendar

import (
	"context"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/internal/service/credentials"
)

// CalendarSource интерфейс источника событий внешнего календаря
type CalendarSource interface {
	ListEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.ExternalEvent, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsByCalendarEventID(ctx context.Context, eventID string) (bool, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// TrailerRepository интерфейс репозитория прицепов
type TrailerRepository interface {
	ListActive(ctx context.Context) ([]*domain.Trailer, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
