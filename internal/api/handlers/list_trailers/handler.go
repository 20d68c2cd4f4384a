package list_trailers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	trailersService "github.com/jla-rentals/JLA-BookingService/internal/service/trailers"
)

const (
	msgInvalidTrailerID = "invalid trailer id"
	msgTrailerNotFound  = "trailer not found"
)

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

// Handle GET /api/v1/trailers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /trailers - Failed to list trailers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGetByID GET /api/v1/trailers/{trailerId}
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	trailerID, err := strconv.ParseInt(mux.Vars(r)["trailerId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTrailerID)
		return
	}

	result, err := h.service.GetByID(r.Context(), trailerID)
	if err != nil {
		switch {
		case errors.Is(err, trailersService.ErrTrailerNotFound):
			h.logger.Warn("GET /trailers/{trailerId} - Trailer not found: trailer_id=%d", trailerID)
			handlers.RespondNotFound(w, msgTrailerNotFound)

		default:
			h.logger.Error("GET /trailers/{trailerId} - Failed to get trailer: trailer_id=%d, error=%v", trailerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
