package lookup_booking

import (
	"errors"
	"net/http"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	bookingsService "github.com/jla-rentals/JLA-BookingService/internal/service/bookings"
	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/lookup
// Неверный rental ID и неверный ключ дают одинаковый 404: наружу не
// раскрывается, какое из полей не совпало.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Lookup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/lookup - Lookup failed: rental_id=%s", req.RentalID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/lookup - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/lookup - Lookup error: rental_id=%s, error=%v", req.RentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/lookup - Booking found: rental_id=%s", result.RentalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
