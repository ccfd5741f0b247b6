package create_recurring_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createRecurring "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени"
	msgEventNotFound         = "событие не найдено"
	msgInvalidRecurrence     = "некорректное правило повторения"
	msgTooManyOccurrences    = "слишком много повторений, допустимо от 2 до 52"
	msgOccurrenceUnavailable = "одна из дат серии недоступна, серия не создана"
	msgDuplicateBooking      = "у участника уже есть бронирование на одну из дат серии"
	msgTooManyAttendees      = "превышено максимальное количество участников"
	msgInvalidInput          = "некорректные данные серии бронирований"
)

type Handler struct {
	useCase CreateRecurringBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrEventNotFound):
			h.logger.Warn("POST /bookings/recurring - Event not found: event_id=%s", req.EventConfigID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createRecurring.ErrInvalidRecurrence):
			h.logger.Warn("POST /bookings/recurring - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createRecurring.ErrTooManyOccurrences):
			h.logger.Warn("POST /bookings/recurring - Too many occurrences: %v", err)
			handlers.RespondBadRequest(w, msgTooManyOccurrences)

		case errors.Is(err, createRecurring.ErrOccurrenceUnavailable):
			h.logger.Warn("POST /bookings/recurring - Occurrence unavailable: %v", err)
			handlers.RespondConflict(w, msgOccurrenceUnavailable)

		case errors.Is(err, createRecurring.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings/recurring - Duplicate booking: %v", err)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createRecurring.ErrTooManyAttendees):
			h.logger.Warn("POST /bookings/recurring - Too many attendees: event_id=%s, count=%d", req.EventConfigID, len(req.Attendees))
			handlers.RespondBadRequest(w, msgTooManyAttendees)

		case errors.Is(err, createRecurring.ErrInvalidInput):
			h.logger.Warn("POST /bookings/recurring - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/recurring - Failed to create series: event_id=%s, error=%v", req.EventConfigID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/recurring - Series created successfully: group_id=%s, count=%d",
		result.RecurrenceGroupID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
