package add_waitlist_entry

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AddEntryRequest HTTP request model
type AddEntryRequest struct {
	EventConfigID string `json:"eventId" validate:"required"`
	Date          string `json:"date" validate:"required"` // "2025-10-15"
	StartTime     string `json:"startTime" validate:"required"`
	EndTime       string `json:"endTime" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddEntryRequest) ToServiceRequest() (*models.AddEntryRequest, error) {
	date, err := calendar.ParseISODate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.AddEntryRequest{
		EventConfigID: r.EventConfigID,
		Date:          date,
		TimeSlot:      domain.TimeRange{Start: start, End: end},
		Name:          r.Name,
		Email:         r.Email,
	}, nil
}
