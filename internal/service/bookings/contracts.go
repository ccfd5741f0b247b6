package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	BookingsForDate(ctx context.Context, eventConfigID string, date time.Time) ([]*domain.Booking, error)
	BookingsForEvent(ctx context.Context, eventConfigID string) ([]*domain.Booking, error)
	HasDuplicateBooking(ctx context.Context, email, eventConfigID string, date time.Time) (bool, error)
}

// EventRepository интерфейс репозитория конфигураций событий
type EventRepository interface {
	GetEvent(ctx context.Context, id string) (*domain.EventConfig, error)
}

// WaitlistNotifier продвижение листа ожидания после отмены
type WaitlistNotifier interface {
	NotifyNext(ctx context.Context, eventConfigID string, date time.Time) (*domain.WaitlistEntry, error)
}

// LockManager интерфейс блокировок по парам (событие, дата)
type LockManager interface {
	Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// MetricsCollector сбор метрик
type MetricsCollector interface {
	BookingOperation(operation string, err error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
