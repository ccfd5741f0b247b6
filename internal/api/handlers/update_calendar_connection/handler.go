package update_calendar_connection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "подключение календаря не найдено"
	msgInvalidInput       = "некорректные настройки синхронизации"
)

type Handler struct {
	service CalendarSyncService
	logger  Logger
}

func NewHandler(service CalendarSyncService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/calendar-connections/{connectionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /calendar-connections/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	conn, err := h.service.UpdateSettings(r.Context(), connectionID, &req)
	if err != nil {
		h.respondError(w, "PATCH /calendar-connections/{id}", connectionID, err)
		return
	}

	h.logger.Info("PATCH /calendar-connections/{id} - Settings updated: connection_id=%s", connectionID)
	handlers.RespondJSON(w, http.StatusOK, conn)
}

// HandleDisconnect DELETE /api/v1/calendar-connections/{connectionId}
// Подключение не удаляется, а помечается отключённым
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	conn, err := h.service.Disconnect(r.Context(), connectionID)
	if err != nil {
		h.respondError(w, "DELETE /calendar-connections/{id}", connectionID, err)
		return
	}

	h.logger.Info("DELETE /calendar-connections/{id} - Calendar disconnected: connection_id=%s", connectionID)
	handlers.RespondJSON(w, http.StatusOK, conn)
}

func (h *Handler) respondError(w http.ResponseWriter, route, connectionID string, err error) {
	switch {
	case errors.Is(err, calendarsync.ErrConnectionNotFound):
		h.logger.Warn("%s - Connection not found: connection_id=%s", route, connectionID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, calendarsync.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: connection_id=%s, error=%v", route, connectionID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to update connection: connection_id=%s, error=%v", route, connectionID, err)
		handlers.RespondInternalError(w)
	}
}
