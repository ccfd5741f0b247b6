package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	BookingsForDate(ctx context.Context, eventConfigID string, date time.Time) ([]*domain.Booking, error)
	HasDuplicateBooking(ctx context.Context, email, eventConfigID string, date time.Time) (bool, error)
}

// EventRepository интерфейс репозитория конфигураций событий
type EventRepository interface {
	GetEvent(ctx context.Context, id string) (*domain.EventConfig, error)
}

// LockManager интерфейс блокировок по паре (событие, дата)
// Заменяет сериализуемую транзакцию: проверка слота и запись выполняются под одной блокировкой
type LockManager interface {
	Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// MetricsCollector сбор метрик
type MetricsCollector interface {
	BookingOperation(operation string, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
