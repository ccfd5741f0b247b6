package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория конфигураций событий
type EventRepository interface {
	GetEvent(ctx context.Context, id string) (*domain.EventConfig, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// BookingsForDate все бронирования события на дату (фильтрация отменённых - на стороне движка)
	BookingsForDate(ctx context.Context, eventConfigID string, date time.Time) ([]*domain.Booking, error)
	// BookingsForEvent все бронирования события
	BookingsForEvent(ctx context.Context, eventConfigID string) ([]*domain.Booking, error)
}

// MetricsCollector сбор метрик (может быть nil-реализацией)
type MetricsCollector interface {
	SlotsReturned(n int)
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
