package get_available_slots

import "errors"

var (
	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("get_available_slots: event not found")

	// ErrInvalidTimezone возвращается при неизвестном часовом поясе
	ErrInvalidTimezone = errors.New("get_available_slots: invalid timezone")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
