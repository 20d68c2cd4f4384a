package approve_booking

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
	msgInvalidPaymentLink = "payment link must be a valid https URL"
	msgBookingNotFound    = "booking not found"
	msgNotPending         = "only pending bookings can be approved"
	msgTerminalState      = "booking is closed or rejected"
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

// Handle POST /api/v1/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.ApproveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Approve(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidPaymentLink):
			h.logger.Warn("POST /bookings/{bookingId}/approve - Invalid payment link: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidPaymentLink)

		case errors.Is(err, bookingsService.ErrTerminalState):
			h.logger.Warn("POST /bookings/{bookingId}/approve - Terminal state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, bookingsService.ErrNotPending):
			h.logger.Warn("POST /bookings/{bookingId}/approve - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /bookings/{bookingId}/approve - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/approve - Booking approved: rental_id=%s", result.RentalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
