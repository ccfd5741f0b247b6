package domain

import "errors"

var (
	// ErrInvalidTimeRange is returned for ranges whose start is not before their end
	ErrInvalidTimeRange = errors.New("domain: invalid time range")
)
