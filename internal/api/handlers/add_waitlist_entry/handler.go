package add_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgEventNotFound      = "событие не найдено"
	msgWaitlistDisabled   = "лист ожидания для события выключен"
	msgWaitlistFull       = "лист ожидания заполнен"
	msgAlreadyWaiting     = "участник уже в листе ожидания на эту дату"
	msgInvalidInput       = "некорректные данные записи"
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

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /waitlist - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	entry, err := h.service.AddEntry(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEventNotFound):
			h.logger.Warn("POST /waitlist - Event not found: event_id=%s", req.EventConfigID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, waitlist.ErrWaitlistDisabled):
			h.logger.Warn("POST /waitlist - Waitlist disabled: event_id=%s", req.EventConfigID)
			handlers.RespondUnprocessable(w, msgWaitlistDisabled)

		case errors.Is(err, waitlist.ErrWaitlistFull):
			h.logger.Warn("POST /waitlist - Waitlist full: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondConflict(w, msgWaitlistFull)

		case errors.Is(err, waitlist.ErrAlreadyWaiting):
			h.logger.Warn("POST /waitlist - Already waiting: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondConflict(w, msgAlreadyWaiting)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist - Failed to add entry: event_id=%s, error=%v", req.EventConfigID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry added successfully: entry_id=%s, event_id=%s", entry.ID, entry.EventConfigID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
