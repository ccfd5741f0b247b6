package get_event

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
)

type EventService interface {
	GetByID(ctx context.Context, id string) (*models.EventResponse, error)
	List(ctx context.Context) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
