package connect_calendar

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

type CalendarSyncService interface {
	Connect(ctx context.Context, req *models.ConnectRequest) (*models.ConnectionResponse, error)
	List(ctx context.Context) (*models.ConnectionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
