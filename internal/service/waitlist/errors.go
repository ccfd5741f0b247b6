package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("waitlist: event not found")

	// ErrWaitlistDisabled возвращается, когда у события выключен лист ожидания
	ErrWaitlistDisabled = errors.New("waitlist: waitlist is disabled for this event")

	// ErrWaitlistFull возвращается, когда достигнута вместимость листа ожидания на дату
	ErrWaitlistFull = errors.New("waitlist: waitlist is full")

	// ErrAlreadyWaiting возвращается, когда этот email уже ждёт на эту дату
	ErrAlreadyWaiting = errors.New("waitlist: already on the waitlist for this date")

	// ErrInvalidTransition возвращается при попытке перевести запись назад по жизненному циклу
	ErrInvalidTransition = errors.New("waitlist: invalid status transition")

	// ErrNotResolved возвращается при попытке удалить запись, которая ещё ожидает
	ErrNotResolved = errors.New("waitlist: only resolved entries can be removed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitlist: internal error")
)
