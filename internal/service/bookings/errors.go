package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidTransition возвращается, когда текущий статус не допускает операцию
	ErrInvalidTransition = errors.New("booking status does not allow this operation")

	// ErrSlotNotAvailable возвращается, когда новый слот при переносе недоступен
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
