package import_calendar

import (
	"context"

	importCalendar "github.com/jla-rentals/JLA-BookingService/internal/usecase/import_calendar"
)

type ImportCalendarUseCase interface {
	Execute(ctx context.Context, req *importCalendar.Request) (*importCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
