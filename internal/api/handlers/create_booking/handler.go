package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgEventNotFound      = "событие не найдено"
	msgDuplicateBooking   = "у участника уже есть бронирование на эту дату"
	msgOutsideWindow      = "дата вне окна бронирования"
	msgDateUnavailable    = "дата недоступна для бронирования"
	msgDayFull            = "на эту дату больше нет мест"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTooManyAttendees   = "превышено максимальное количество участников"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrEventNotFound):
			h.logger.Warn("POST /bookings - Event not found: event_id=%s", req.EventConfigID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: event_id=%s, date=%s, start=%s", req.EventConfigID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDayFull):
			h.logger.Warn("POST /bookings - Day full: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondConflict(w, msgDayFull)

		case errors.Is(err, createBooking.ErrOutsideWindow):
			h.logger.Warn("POST /bookings - Outside window: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondUnprocessable(w, msgOutsideWindow)

		case errors.Is(err, createBooking.ErrDateUnavailable):
			h.logger.Warn("POST /bookings - Date unavailable: event_id=%s, date=%s", req.EventConfigID, req.Date)
			handlers.RespondUnprocessable(w, msgDateUnavailable)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: event_id=%s, start=%s", req.EventConfigID, req.StartTime)
			handlers.RespondUnprocessable(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: event_id=%s, date=%s, start=%s", req.EventConfigID, req.Date, req.StartTime)
			handlers.RespondUnprocessable(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrTooManyAttendees):
			h.logger.Warn("POST /bookings - Too many attendees: event_id=%s, count=%d", req.EventConfigID, len(req.Attendees))
			handlers.RespondBadRequest(w, msgTooManyAttendees)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: event_id=%s, error=%v", req.EventConfigID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, event_id=%s", result.ID, result.EventConfigID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
