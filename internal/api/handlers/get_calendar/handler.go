package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	trailersService "github.com/jla-rentals/JLA-BookingService/internal/service/trailers"
)

const (
	msgInvalidDateRange = "startDate and endDate are required in YYYY-MM-DD format"
)

// defaultWindowDays окно календаря по умолчанию, если параметры не заданы
const defaultWindowDays = 60

type Handler struct {
	service TrailersService
	logger  Logger
}

func NewHandler(service TrailersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")

	var startDate, endDate time.Time
	var err error

	if startParam == "" && endParam == "" {
		now := time.Now()
		startDate = now
		endDate = now.AddDate(0, 0, defaultWindowDays)
	} else {
		startDate, err = time.Parse(domain.DateFormat, startParam)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		endDate, err = time.Parse(domain.DateFormat, endParam)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
	}

	result, err := h.service.GetCalendar(r.Context(), startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, trailersService.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /calendar - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
