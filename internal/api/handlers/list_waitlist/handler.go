package list_waitlist

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgMissingEventID = "ID события обязателен"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/waitlist
// Query params: eventId (required), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		h.logger.Warn("GET /waitlist - Missing event ID")
		handlers.RespondBadRequest(w, msgMissingEventID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /waitlist - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), eventID, date)
	if err != nil {
		h.logger.Error("GET /waitlist - Failed to list entries: event_id=%s, error=%v", eventID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /waitlist - Entries retrieved successfully: event_id=%s, count=%d", eventID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
