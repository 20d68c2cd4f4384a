package close_booking

import (
	"context"

	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Close(ctx context.Context, bookingID int64, req *models.CloseRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
