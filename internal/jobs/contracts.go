package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
)

// WaitlistExpirer переводит просроченные notified записи в expired
type WaitlistExpirer interface {
	ExpireNotified(ctx context.Context, ttl time.Duration) (int, error)
}

// SnapshotSource источник снимка состояния
type SnapshotSource interface {
	Snapshot() memory.State
}

// SnapshotSaver сохраняет снимок состояния
type SnapshotSaver interface {
	Save(ctx context.Context, st memory.State) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
