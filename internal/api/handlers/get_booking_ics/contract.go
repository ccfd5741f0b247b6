package get_booking_ics

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BookingService interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
}

type EventService interface {
	Get(ctx context.Context, id string) (*domain.EventConfig, error)
}

type Encoder interface {
	Generate(b *domain.Booking, cfg *domain.EventConfig) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
