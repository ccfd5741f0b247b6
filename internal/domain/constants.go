package domain

// Default configuration values
const (
	DefaultDurationMinutes      = 30
	DefaultSchedulingWindowDays = 60
	DefaultMinimumNoticeMinutes = 0
	DefaultTimezone             = "UTC"
)

// Business validation constants
const (
	MinDurationMinutes      = 5
	MaxDurationMinutes      = 480 // 8 hours
	MaxBufferMinutes        = 240
	MinSchedulingWindowDays = 1
	MaxSchedulingWindowDays = 365   // 1 year
	MaxMinimumNoticeMinutes = 10080 // 1 week
	MaxBookingsPerDayLimit  = 1000
	MaxAttendeesLimit       = 100
	MaxWaitlistCapacity     = 1000
	MaxNotesLength          = 500
	MaxReasonLength         = 500
	MaxNameLength           = 200

	// NextAvailableScanDays caps the forward scan of NextAvailableDate
	NextAvailableScanDays = 90

	// Recurring batch limits
	MinRecurringOccurrences = 2
	MaxRecurringOccurrences = 52
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
