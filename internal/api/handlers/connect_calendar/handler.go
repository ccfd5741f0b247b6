package connect_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры подключения"
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

// Handle POST /api/v1/calendar-connections
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendar-connections - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	conn, err := h.service.Connect(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendarsync.ErrInvalidInput):
			h.logger.Warn("POST /calendar-connections - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /calendar-connections - Failed to connect: provider=%s, error=%v", req.Provider, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendar-connections - Calendar connected: connection_id=%s, provider=%s", conn.ID, conn.Provider)
	handlers.RespondJSON(w, http.StatusCreated, conn)
}

// HandleList GET /api/v1/calendar-connections
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar-connections - Failed to list connections: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar-connections - Found %d connections", len(resp.Connections))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
