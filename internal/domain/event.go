package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// LocationType is the kind of meeting place of an event.
type LocationType string

const (
	LocationInPerson LocationType = "in_person"
	LocationPhone    LocationType = "phone"
	LocationVideo    LocationType = "video"
	LocationCustom   LocationType = "custom"
)

// Location describes where an event takes place.
type Location struct {
	Type    LocationType `json:"type"`
	Details string       `json:"details,omitempty"`
}

// Label returns a human-readable location label.
func (l Location) Label() string {
	switch l.Type {
	case LocationInPerson:
		if l.Details != "" {
			return l.Details
		}
		return "In person"
	case LocationPhone:
		if l.Details != "" {
			return "Phone call: " + l.Details
		}
		return "Phone call"
	case LocationVideo:
		if l.Details != "" {
			return "Video call: " + l.Details
		}
		return "Video call"
	case LocationCustom:
		return l.Details
	default:
		return l.Details
	}
}

// DaySchedule is the weekly availability of one weekday.
type DaySchedule struct {
	Enabled bool        `json:"enabled"`
	Ranges  []TimeRange `json:"ranges"`
}

// WeeklySchedule is indexed by time.Weekday (Sunday = 0).
type WeeklySchedule [7]DaySchedule

// For returns the schedule of the weekday of date.
func (w WeeklySchedule) For(date time.Time) DaySchedule {
	return w[date.Weekday()]
}

// DateOverride replaces the weekly schedule on one date. Empty Ranges mark the
// whole day unavailable.
type DateOverride struct {
	Date   time.Time   `json:"date"`
	Ranges []TimeRange `json:"ranges"`
}

// IsDayOff reports whether the override closes the day.
func (o DateOverride) IsDayOff() bool {
	return len(o.Ranges) == 0
}

// EventConfig is a bookable offering published by a provider.
type EventConfig struct {
	ID          string
	Name        string
	Description string
	Location    Location
	// Timezone is the IANA zone in which the schedule is expressed. "Today" and
	// minimum notice are evaluated in this zone.
	Timezone string

	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MaxBookingsPerDay    int // 0 = unlimited
	MinimumNoticeMinutes int
	SchedulingWindowDays int

	WeeklySchedule WeeklySchedule
	DateOverrides  []DateOverride

	MaxAttendees     int // per booking, 0 = 1
	WaitlistEnabled  bool
	WaitlistCapacity int // 0 = unlimited

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OverrideFor returns the override for date, if any.
func (c *EventConfig) OverrideFor(date time.Time) (DateOverride, bool) {
	for _, o := range c.DateOverrides {
		if calendar.IsSameDay(o.Date, date) {
			return o, true
		}
	}
	return DateOverride{}, false
}

// OpenRanges returns the ranges open on date: the override when present,
// otherwise the enabled weekly entry. ok is false when the day is closed.
func (c *EventConfig) OpenRanges(date time.Time) (ranges []TimeRange, overridden bool, ok bool) {
	if o, found := c.OverrideFor(date); found {
		if o.IsDayOff() {
			return nil, true, false
		}
		return o.Ranges, true, true
	}

	day := c.WeeklySchedule.For(date)
	if !day.Enabled || len(day.Ranges) == 0 {
		return nil, false, false
	}
	return day.Ranges, false, true
}

// HasDailyLimit reports whether MaxBookingsPerDay is enforced.
func (c *EventConfig) HasDailyLimit() bool {
	return c.MaxBookingsPerDay > 0
}

// AttendeeLimit returns the effective per-booking attendee limit.
func (c *EventConfig) AttendeeLimit() int {
	if c.MaxAttendees <= 0 {
		return 1
	}
	return c.MaxAttendees
}

// Clone returns a deep copy.
func (c *EventConfig) Clone() *EventConfig {
	if c == nil {
		return nil
	}
	out := *c
	for i := range out.WeeklySchedule {
		out.WeeklySchedule[i].Ranges = append([]TimeRange(nil), c.WeeklySchedule[i].Ranges...)
	}
	out.DateOverrides = make([]DateOverride, len(c.DateOverrides))
	for i, o := range c.DateOverrides {
		out.DateOverrides[i] = DateOverride{Date: o.Date, Ranges: append([]TimeRange(nil), o.Ranges...)}
	}
	return &out
}
