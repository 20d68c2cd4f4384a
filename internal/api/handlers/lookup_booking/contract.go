package lookup_booking

import (
	"context"

	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Lookup(ctx context.Context, req *models.LookupRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
