package check_availability

import (
	"context"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
)

type AvailabilityService interface {
	Check(ctx context.Context, trailerID int64, startDate, endDate time.Time, excludeBookingID *int64) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
