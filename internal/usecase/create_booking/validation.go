package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventConfigID == "" {
		return fmt.Errorf("%w: eventConfigID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := ValidateAttendees(req.Attendees); err != nil {
		return err
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// ValidateAttendees проверяет список участников: минимум один, имя и корректный email
func ValidateAttendees(attendees []domain.Attendee) error {
	if len(attendees) == 0 {
		return fmt.Errorf("%w: at least one attendee is required", ErrInvalidInput)
	}

	for i, a := range attendees {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: attendees[%d].name is required", ErrInvalidInput, i)
		}
		if utf8.RuneCountInString(a.Name) > domain.MaxNameLength {
			return fmt.Errorf("%w: attendees[%d].name is too long", ErrInvalidInput, i)
		}
		if err := validate.Var(a.Email, "required,email"); err != nil {
			return fmt.Errorf("%w: attendees[%d].email is invalid", ErrInvalidInput, i)
		}
	}

	return nil
}

// validateAttendeeLimit проверяет количество участников относительно конфигурации события
func validateAttendeeLimit(cfg *domain.EventConfig, attendees []domain.Attendee) error {
	if len(attendees) > cfg.AttendeeLimit() {
		return fmt.Errorf("%w: %d attendees, limit is %d", ErrTooManyAttendees, len(attendees), cfg.AttendeeLimit())
	}
	return nil
}

// reasonToError переводит причину отказа движка в ошибку use case
func reasonToError(reason get_available_slots.Reason) error {
	switch reason {
	case get_available_slots.ReasonAvailable:
		return nil
	case get_available_slots.ReasonOutsideWindow:
		return ErrOutsideWindow
	case get_available_slots.ReasonDayOff, get_available_slots.ReasonNotScheduled:
		return fmt.Errorf("%w: %s", ErrDateUnavailable, reason)
	case get_available_slots.ReasonDayFull:
		return ErrDayFull
	case get_available_slots.ReasonOutsideHours:
		return ErrInvalidTimeSlot
	case get_available_slots.ReasonTooLate:
		return ErrTooLateToBook
	case get_available_slots.ReasonConflict, get_available_slots.ReasonNoFreeSlots:
		return ErrSlotNotAvailable
	default:
		return fmt.Errorf("%w: unexpected reason %q", ErrInternal, reason)
	}
}
