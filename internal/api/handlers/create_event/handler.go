package create_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyExists      = "событие с таким ID уже существует"
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

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventAlreadyExists):
			h.logger.Warn("POST /events - Event already exists: event_id=%s", req.ID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid input: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidInput+": "+err.Error())

		default:
			h.logger.Error("POST /events - Failed to create event: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created successfully: event_id=%s", event.ID)
	handlers.RespondJSON(w, http.StatusCreated, event)
}
