package import_calendar

import (
	"errors"
	"io"
	"net/http"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
	importCalendar "github.com/jla-rentals/JLA-BookingService/internal/usecase/import_calendar"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgCalendarDown       = "external calendar is unavailable, sync aborted"
)

type Handler struct {
	useCase ImportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ImportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendar/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /calendar/sync - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /calendar/sync - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, importCalendar.ErrUpstreamUnavailable):
			h.logger.Error("POST /calendar/sync - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarDown)

		case errors.Is(err, importCalendar.ErrInvalidInput):
			h.logger.Warn("POST /calendar/sync - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /calendar/sync - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar/sync - Sync finished: created=%d, skipped=%d, ignored=%d",
		result.Created, result.SkippedExisting, result.Ignored)
	handlers.RespondJSON(w, http.StatusOK, result)
}
