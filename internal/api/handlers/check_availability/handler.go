package check_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

const (
	msgInvalidTrailerID = "invalid trailer id"
	msgInvalidDateRange = "startDate and endDate are required in YYYY-MM-DD format"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trailers/{trailerId}/availability?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trailerID, err := strconv.ParseInt(mux.Vars(r)["trailerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTrailerID)
		return
	}

	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")

	startDate, err := time.Parse(domain.DateFormat, startParam)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, endParam)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}
	if startDate.After(endDate) {
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.service.Check(r.Context(), trailerID, startDate, endDate, nil)
	if err != nil {
		h.logger.Error("GET /trailers/{trailerId}/availability - Check failed: trailer_id=%d, error=%v", trailerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromResult(trailerID, startParam, endParam, result))
}
