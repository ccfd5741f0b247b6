package calendarsync

import "errors"

var (
	// ErrConnectionNotFound возвращается, когда подключение не найдено
	ErrConnectionNotFound = errors.New("calendarsync: connection not found")

	// ErrInvalidFeed возвращается, когда ICS-фид не удалось разобрать
	ErrInvalidFeed = errors.New("calendarsync: invalid ics feed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calendarsync: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendarsync: internal error")
)
