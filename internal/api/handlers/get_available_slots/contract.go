package get_available_slots

import (
	"context"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
	MonthAvailability(ctx context.Context, req *getAvailableSlots.MonthRequest) (*getAvailableSlots.MonthResponse, error)
	NextAvailable(ctx context.Context, eventConfigID string, from time.Time) (*getAvailableSlots.NextAvailableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
