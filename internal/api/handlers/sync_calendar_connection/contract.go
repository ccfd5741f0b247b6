package sync_calendar_connection

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

type CalendarSyncService interface {
	Sync(ctx context.Context, id string, feed []byte) (*models.SyncResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
