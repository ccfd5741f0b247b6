package create_booking

import "errors"

var (
	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("create_booking: event not found")

	// ErrDuplicateBooking возвращается, когда у участника уже есть бронирование этого события на дату
	ErrDuplicateBooking = errors.New("create_booking: attendee already has a booking on this date")

	// ErrOutsideWindow возвращается, когда дата в прошлом или за пределами окна бронирования
	ErrOutsideWindow = errors.New("create_booking: date is outside the scheduling window")

	// ErrDateUnavailable возвращается, когда событие не проводится в указанную дату
	ErrDateUnavailable = errors.New("create_booking: event is not available on this date")

	// ErrDayFull возвращается, когда достигнут дневной лимит бронирований
	ErrDayFull = errors.New("create_booking: daily booking limit reached")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот начинается раньше минимального времени уведомления
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с другим бронированием (с учётом буферов)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooManyAttendees возвращается при превышении лимита участников
	ErrTooManyAttendees = errors.New("create_booking: too many attendees")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
