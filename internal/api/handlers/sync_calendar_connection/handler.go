package sync_calendar_connection

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync"
)

// maxFeedSize ограничивает размер загружаемого ICS-фида
const maxFeedSize = 5 << 20

const (
	msgInvalidRequestBody = "не удалось прочитать тело запроса"
	msgNotFound           = "подключение календаря не найдено"
	msgInvalidFeed        = "некорректный ICS-фид"
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

// Handle POST /api/v1/calendar-connections/{connectionId}/sync
// Тело запроса (необязательно) - ICS-фид внешнего календаря (text/calendar)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	feed, err := io.ReadAll(io.LimitReader(r.Body, maxFeedSize))
	if err != nil {
		h.logger.Warn("POST /calendar-connections/{id}/sync - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Sync(r.Context(), connectionID, feed)
	if err != nil {
		switch {
		case errors.Is(err, calendarsync.ErrConnectionNotFound):
			h.logger.Warn("POST /calendar-connections/{id}/sync - Connection not found: connection_id=%s", connectionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendarsync.ErrInvalidFeed):
			h.logger.Warn("POST /calendar-connections/{id}/sync - Invalid feed: connection_id=%s, error=%v", connectionID, err)
			handlers.RespondUnprocessable(w, msgInvalidFeed)

		default:
			h.logger.Error("POST /calendar-connections/{id}/sync - Failed to sync: connection_id=%s, error=%v", connectionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar-connections/{id}/sync - Sync finished: connection_id=%s, synced=%t",
		connectionID, result.Synced)
	handlers.RespondJSON(w, http.StatusOK, result)
}
