package calendarsync

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ConnectionRepository интерфейс репозитория подключений календарей
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, conn *domain.CalendarConnection) (*domain.CalendarConnection, error)
	GetConnection(ctx context.Context, id string) (*domain.CalendarConnection, error)
	UpdateConnection(ctx context.Context, conn *domain.CalendarConnection) (*domain.CalendarConnection, error)
	ListConnections(ctx context.Context) ([]*domain.CalendarConnection, error)
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
