package resolve_waitlist_entry

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

const (
	msgNotFound          = "запись листа ожидания не найдена"
	msgInvalidTransition = "запись нельзя перевести в этот статус"
	msgNotResolved       = "удалить можно только завершённую запись"
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

// HandleApprove PATCH /api/v1/waitlist/{entryId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "PATCH /waitlist/{id}/approve", h.service.Approve)
}

// HandleReject PATCH /api/v1/waitlist/{entryId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "PATCH /waitlist/{id}/reject", h.service.Reject)
}

// HandleRemove DELETE /api/v1/waitlist/{entryId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entryId"]

	if err := h.service.Remove(r.Context(), entryID); err != nil {
		h.respondError(w, "DELETE /waitlist/{id}", entryID, err)
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Entry removed: entry_id=%s", entryID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	action func(ctx context.Context, id string) (*models.EntryResponse, error),
) {
	entryID := mux.Vars(r)["entryId"]

	entry, err := action(r.Context(), entryID)
	if err != nil {
		h.respondError(w, route, entryID, err)
		return
	}

	h.logger.Info("%s - Entry resolved: entry_id=%s, status=%s", route, entryID, entry.Status)
	handlers.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) respondError(w http.ResponseWriter, route, entryID string, err error) {
	switch {
	case errors.Is(err, waitlist.ErrEntryNotFound):
		h.logger.Warn("%s - Entry not found: entry_id=%s", route, entryID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, waitlist.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: entry_id=%s, error=%v", route, entryID, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, waitlist.ErrNotResolved):
		h.logger.Warn("%s - Entry not resolved: entry_id=%s", route, entryID)
		handlers.RespondConflict(w, msgNotResolved)

	default:
		h.logger.Error("%s - Failed to update entry: entry_id=%s, error=%v", route, entryID, err)
		handlers.RespondInternalError(w)
	}
}
