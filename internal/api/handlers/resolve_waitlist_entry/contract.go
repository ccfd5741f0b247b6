package resolve_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Approve(ctx context.Context, id string) (*models.EntryResponse, error)
	Reject(ctx context.Context, id string) (*models.EntryResponse, error)
	Remove(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
