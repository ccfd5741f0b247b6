package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventConfigID == "" {
		return fmt.Errorf("%w: eventConfigID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateMonthRequest валидирует запрос доступности месяца
func validateMonthRequest(req *MonthRequest) error {
	if req.EventConfigID == "" {
		return fmt.Errorf("%w: eventConfigID is required", ErrInvalidInput)
	}

	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month must be 1..12", ErrInvalidInput)
	}

	if req.Year < 1970 || req.Year > 9999 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}

	return nil
}
