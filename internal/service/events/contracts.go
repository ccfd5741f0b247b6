package events

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventRepository интерфейс репозитория конфигураций событий
type EventRepository interface {
	CreateEvent(ctx context.Context, cfg *domain.EventConfig) (*domain.EventConfig, error)
	GetEvent(ctx context.Context, id string) (*domain.EventConfig, error)
	UpdateEvent(ctx context.Context, cfg *domain.EventConfig) (*domain.EventConfig, error)
	ListEvents(ctx context.Context) ([]*domain.EventConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
