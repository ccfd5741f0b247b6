package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("event not found")

	// ErrEventAlreadyExists возвращается при попытке создать событие с занятым ID
	ErrEventAlreadyExists = errors.New("event already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
