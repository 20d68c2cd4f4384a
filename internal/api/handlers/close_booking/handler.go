package close_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	bookingsService "github.com/jla-rentals/JLA-BookingService/internal/service/bookings"
	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgBookingNotFound    = "booking not found"
	msgInvalidOutcome     = "outcome is not valid for the current booking status"
	msgTerminalState      = "booking is already closed or rejected"
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

// Handle POST /api/v1/bookings/{bookingId}/close
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CloseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/close - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Close(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/close - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrTerminalState):
			h.logger.Warn("POST /bookings/{bookingId}/close - Terminal state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, bookingsService.ErrInvalidOutcome):
			h.logger.Warn("POST /bookings/{bookingId}/close - Invalid outcome: booking_id=%d, outcome=%s",
				bookingID, req.Outcome)
			handlers.RespondConflict(w, msgInvalidOutcome)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{bookingId}/close - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{bookingId}/close - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/close - Booking closed: rental_id=%s, outcome=%s",
		result.RentalID, req.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}
