package create_booking

import (
	"errors"
	"net/http"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	createBooking "github.com/jla-rentals/JLA-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgTrailerNotFound    = "trailer not found"
	msgTrailerInactive    = "trailer is not available for rent"
	msgDatesUnavailable   = "requested dates are unavailable"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *createBooking.DateUnavailableError
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /bookings - Dates unavailable: trailer_id=%d, %s..%s",
				req.TrailerID, req.StartDate, req.EndDate)
			respondUnavailable(w, unavailable)

		case errors.Is(err, createBooking.ErrTrailerNotFound):
			h.logger.Warn("POST /bookings - Trailer not found: trailer_id=%d", req.TrailerID)
			handlers.RespondNotFound(w, msgTrailerNotFound)

		case errors.Is(err, createBooking.ErrTrailerInactive):
			h.logger.Warn("POST /bookings - Trailer inactive: trailer_id=%d", req.TrailerID)
			handlers.RespondConflict(w, msgTrailerInactive)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: trailer_id=%d, error=%v",
				req.TrailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: rental_id=%s, trailer_id=%d",
		result.RentalID, result.TrailerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func respondUnavailable(w http.ResponseWriter, unavailable *createBooking.DateUnavailableError) {
	resp := UnavailableResponse{
		Error:     msgDatesUnavailable,
		Conflicts: make([]ConflictResponse, len(unavailable.Conflicts)),
	}
	for i, c := range unavailable.Conflicts {
		resp.Conflicts[i] = ConflictResponse{
			StartDate: c.StartDate.Format(domain.DateFormat),
			EndDate:   c.EndDate.Format(domain.DateFormat),
		}
	}
	handlers.RespondJSON(w, http.StatusConflict, resp)
}
