package update_calendar_connection

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

type CalendarSyncService interface {
	UpdateSettings(ctx context.Context, id string, req *models.UpdateSettingsRequest) (*models.ConnectionResponse, error)
	Disconnect(ctx context.Context, id string) (*models.ConnectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
