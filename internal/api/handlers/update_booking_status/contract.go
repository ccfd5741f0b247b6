package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkNoShow(ctx context.Context, id string) (*models.BookingResponse, error)
	UndoNoShow(ctx context.Context, id string) (*models.BookingResponse, error)
	Complete(ctx context.Context, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
