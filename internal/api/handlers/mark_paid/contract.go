package mark_paid

import (
	"context"

	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	MarkPaid(ctx context.Context, bookingID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
