package mark_paid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	bookingsService "github.com/jla-rentals/JLA-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
	msgCannotMarkPaid   = "only approved bookings can be marked paid"
	msgTerminalState    = "booking is closed or rejected"
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

// Handle POST /api/v1/bookings/{bookingId}/paid
// Повторный вызов на уже оплаченном бронировании — no-op с 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.MarkPaid(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/paid - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrTerminalState):
			h.logger.Warn("POST /bookings/{bookingId}/paid - Terminal state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, bookingsService.ErrCannotMarkPaid):
			h.logger.Warn("POST /bookings/{bookingId}/paid - Cannot mark paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotMarkPaid)

		default:
			h.logger.Error("POST /bookings/{bookingId}/paid - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/paid - Booking paid: rental_id=%s", result.RentalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
