package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	CreateWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetWaitlistEntry(ctx context.Context, id string) (*domain.WaitlistEntry, error)
	UpdateWaitlistEntry(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	DeleteWaitlistEntry(ctx context.Context, id string) error
	ListWaitlist(ctx context.Context, eventConfigID string, date *time.Time) ([]*domain.WaitlistEntry, error)
	PromoteNextWaiting(ctx context.Context, eventConfigID string, date time.Time) (*domain.WaitlistEntry, error)
}

// EventRepository интерфейс репозитория конфигураций событий
type EventRepository interface {
	GetEvent(ctx context.Context, id string) (*domain.EventConfig, error)
}

// LockManager интерфейс блокировок по ключам
type LockManager interface {
	Do(ctx context.Context, keys []string, fn func(ctx context.Context) error) error
}

// MetricsCollector сбор метрик
type MetricsCollector interface {
	WaitlistPromotion(promoted bool)
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
