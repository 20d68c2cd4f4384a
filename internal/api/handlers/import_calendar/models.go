package import_calendar

import (
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	importCalendar "github.com/jla-rentals/JLA-BookingService/internal/usecase/import_calendar"
)

// SyncRequest HTTP request model. Окно по умолчанию: от сегодня на
// defaultWindowDays вперед.
type SyncRequest struct {
	WindowStart *string `json:"windowStart,omitempty"` // "2025-06-01"
	WindowEnd   *string `json:"windowEnd,omitempty"`
}

const defaultWindowDays = 90

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SyncRequest) ToUseCaseRequest() (*importCalendar.Request, error) {
	now := time.Now()
	req := &importCalendar.Request{
		WindowStart: now,
		WindowEnd:   now.AddDate(0, 0, defaultWindowDays),
	}

	if r.WindowStart != nil {
		start, err := time.Parse(domain.DateFormat, *r.WindowStart)
		if err != nil {
			return nil, err
		}
		req.WindowStart = start
	}
	if r.WindowEnd != nil {
		end, err := time.Parse(domain.DateFormat, *r.WindowEnd)
		if err != nil {
			return nil, err
		}
		req.WindowEnd = end
	}
	return req, nil
}
