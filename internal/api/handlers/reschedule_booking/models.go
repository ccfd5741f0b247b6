package reschedule_booking

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Date      string `json:"date" validate:"required"`      // "2025-10-15"
	StartTime string `json:"startTime" validate:"required"` // "10:00"
	Reason    string `json:"reason,omitempty" validate:"max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleBookingRequest) ToServiceRequest() (*models.RescheduleBookingRequest, error) {
	date, err := calendar.ParseISODate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleBookingRequest{
		Date:      date,
		StartTime: startTime,
		Reason:    r.Reason,
	}, nil
}
