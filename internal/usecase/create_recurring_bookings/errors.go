package create_recurring_bookings

import "errors"

var (
	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("create_recurring_bookings: event not found")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("create_recurring_bookings: invalid recurrence rule")

	// ErrTooManyOccurrences возвращается, когда правило даёт больше допустимого числа повторений
	ErrTooManyOccurrences = errors.New("create_recurring_bookings: too many occurrences")

	// ErrOccurrenceUnavailable возвращается, когда хотя бы одно повторение нельзя забронировать.
	// Серия создаётся целиком или не создаётся вообще
	ErrOccurrenceUnavailable = errors.New("create_recurring_bookings: occurrence is not available")

	// ErrDuplicateBooking возвращается, когда у участника уже есть бронирование на одну из дат
	ErrDuplicateBooking = errors.New("create_recurring_bookings: attendee already has a booking on this date")

	// ErrTooManyAttendees возвращается при превышении лимита участников
	ErrTooManyAttendees = errors.New("create_recurring_bookings: too many attendees")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_bookings: internal error")
)
