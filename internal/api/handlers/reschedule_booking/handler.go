package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingsService "github.com/jla-rentals/JLA-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgBookingNotFound    = "booking not found"
	msgCannotReschedule   = "only approved or paid bookings can be rescheduled"
	msgTerminalState      = "booking is closed or rejected"
	msgDatesUnavailable   = "requested dates are unavailable"
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

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/reschedule - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Reschedule(r.Context(), bookingID, serviceReq)
	if err != nil {
		var unavailable *bookingsService.DateUnavailableError
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /bookings/{bookingId}/reschedule - Dates unavailable: booking_id=%d, %s..%s",
				bookingID, req.StartDate, req.EndDate)
			respondUnavailable(w, unavailable)

		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrTerminalState):
			h.logger.Warn("POST /bookings/{bookingId}/reschedule - Terminal state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, bookingsService.ErrCannotReschedule):
			h.logger.Warn("POST /bookings/{bookingId}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{bookingId}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{bookingId}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/reschedule - Booking rescheduled: rental_id=%s, %s..%s",
		result.RentalID, result.StartDate, result.EndDate)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func respondUnavailable(w http.ResponseWriter, unavailable *bookingsService.DateUnavailableError) {
	resp := UnavailableResponse{
		Error:     msgDatesUnavailable,
		Conflicts: make([]ConflictResponse, len(unavailable.Conflicts)),
	}
	for i, c := range unavailable.Conflicts {
		resp.Conflicts[i] = ConflictResponse{
			RentalID:  c.RentalID,
			StartDate: c.StartDate.Format(domain.DateFormat),
			EndDate:   c.EndDate.Format(domain.DateFormat),
		}
	}
	handlers.RespondJSON(w, http.StatusConflict, resp)
}
