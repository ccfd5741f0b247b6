package memory

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("memory.store: booking not found")

	// ErrEventNotFound возвращается, когда конфигурация события не найдена
	ErrEventNotFound = errors.New("memory.store: event config not found")

	// ErrWaitlistEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrWaitlistEntryNotFound = errors.New("memory.store: waitlist entry not found")

	// ErrConnectionNotFound возвращается, когда подключение календаря не найдено
	ErrConnectionNotFound = errors.New("memory.store: calendar connection not found")

	// ErrBatchTooSmall возвращается, когда серия содержит меньше двух бронирований
	ErrBatchTooSmall = errors.New("memory.store: recurring batch needs at least two bookings")

	// ErrDuplicateID возвращается при попытке вставить запись с уже существующим ID
	ErrDuplicateID = errors.New("memory.store: duplicate id")

	// ErrNilEntity возвращается при передаче nil
	ErrNilEntity = errors.New("memory.store: nil entity")
)
