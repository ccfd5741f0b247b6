package create_recurring_bookings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventConfigID == "" {
		return fmt.Errorf("%w: eventConfigID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() && len(req.Dates) == 0 {
		return fmt.Errorf("%w: startDate or dates is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.Attendees) == 0 {
		return fmt.Errorf("%w: at least one attendee is required", ErrInvalidInput)
	}
	for i, a := range req.Attendees {
		if strings.TrimSpace(a.Name) == "" || utf8.RuneCountInString(a.Name) > domain.MaxNameLength {
			return fmt.Errorf("%w: attendees[%d].name is invalid", ErrInvalidInput, i)
		}
		if err := validate.Var(a.Email, "required,email"); err != nil {
			return fmt.Errorf("%w: attendees[%d].email is invalid", ErrInvalidInput, i)
		}
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
