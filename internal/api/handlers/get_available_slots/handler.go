package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingMonth    = "месяц обязателен"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidTimezone = "неизвестный часовой пояс"
	msgEventNotFound   = "событие не найдено"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/available-slots
// Query params: date (required, YYYY-MM-DD), timezone (optional, IANA)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /events/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(eventID, dateStr, r.URL.Query().Get("timezone"))
	if err != nil {
		h.logger.Warn("GET /events/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, "GET /events/{id}/available-slots", eventID, err)
		return
	}

	h.logger.Info("GET /events/{id}/available-slots - Slots retrieved successfully: event_id=%s, reason=%s, slots_count=%d",
		eventID, result.Reason, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleMonth GET /api/v1/events/{eventId}/availability
// Query params: month (required, YYYY-MM)
func (h *Handler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /events/{id}/availability - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	year, month, err := handlers.ParseMonth(monthStr)
	if err != nil {
		h.logger.Warn("GET /events/{id}/availability - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.MonthAvailability(r.Context(), &getAvailableSlots.MonthRequest{
		EventConfigID: eventID,
		Year:          year,
		Month:         month,
	})
	if err != nil {
		h.respondError(w, "GET /events/{id}/availability", eventID, err)
		return
	}

	h.logger.Info("GET /events/{id}/availability - Month availability retrieved: event_id=%s, month=%s", eventID, monthStr)
	handlers.RespondJSON(w, http.StatusOK, FromMonthResponse(result))
}

// HandleNext GET /api/v1/events/{eventId}/next-available
// Query params: from (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /events/{id}/next-available - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var fromDate time.Time
	if from != nil {
		fromDate = *from
	}

	result, err := h.useCase.NextAvailable(r.Context(), eventID, fromDate)
	if err != nil {
		h.respondError(w, "GET /events/{id}/next-available", eventID, err)
		return
	}

	h.logger.Info("GET /events/{id}/next-available - Next available date: event_id=%s, found=%t", eventID, result.Found)
	handlers.RespondJSON(w, http.StatusOK, FromNextAvailableResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route, eventID string, err error) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrEventNotFound):
		h.logger.Warn("%s - Event not found: event_id=%s", route, eventID)
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, getAvailableSlots.ErrInvalidTimezone):
		h.logger.Warn("%s - Invalid timezone: event_id=%s, error=%v", route, eventID, err)
		handlers.RespondBadRequest(w, msgInvalidTimezone)

	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: event_id=%s, error=%v", route, eventID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to compute availability: event_id=%s, error=%v", route, eventID, err)
		handlers.RespondInternalError(w)
	}
}
