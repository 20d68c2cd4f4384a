package get_calendar

import (
	"context"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/service/trailers/models"
)

type TrailersService interface {
	GetCalendar(ctx context.Context, startDate, endDate time.Time) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
