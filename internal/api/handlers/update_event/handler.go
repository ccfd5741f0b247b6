package update_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "событие не найдено"
	msgInvalidInput       = "некорректная конфигурация события"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{eventId}
// Поддерживает частичное обновление - обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req models.UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := h.service.Update(r.Context(), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PUT /events/{id} - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("PUT /events/{id} - Invalid input: event_id=%s, error=%v", eventID, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidInput+": "+err.Error())

		default:
			h.logger.Error("PUT /events/{id} - Failed to update event: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{id} - Event updated successfully: event_id=%s", eventID)
	handlers.RespondJSON(w, http.StatusOK, event)
}
