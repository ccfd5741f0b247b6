package domain

import "time"

// CalendarProvider is an external calendar vendor
type CalendarProvider string

const (
	ProviderGoogle  CalendarProvider = "google"
	ProviderOutlook CalendarProvider = "outlook"
	ProviderApple   CalendarProvider = "apple"
	ProviderCalDAV  CalendarProvider = "caldav"
)

// ParseCalendarProvider converts a string into a known provider
func ParseCalendarProvider(s string) (CalendarProvider, bool) {
	switch CalendarProvider(s) {
	case ProviderGoogle, ProviderOutlook, ProviderApple, ProviderCalDAV:
		return CalendarProvider(s), true
	}
	return "", false
}

// SyncDirection is the direction of calendar synchronization
type SyncDirection string

const (
	SyncOneWay SyncDirection = "one_way"
	SyncTwoWay SyncDirection = "two_way"
)

// ParseSyncDirection converts a string into a known direction
func ParseSyncDirection(s string) (SyncDirection, bool) {
	switch SyncDirection(s) {
	case SyncOneWay, SyncTwoWay:
		return SyncDirection(s), true
	}
	return "", false
}

// CalendarConnection is a link to an external calendar. It does not take part
// in slot conflict detection.
type CalendarConnection struct {
	ID             string
	Provider       CalendarProvider
	SyncDirection  SyncDirection
	CheckConflicts bool
	Connected      bool
	LastSyncedAt   *time.Time
	ImportedEvents int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a copy
func (c *CalendarConnection) Clone() *CalendarConnection {
	if c == nil {
		return nil
	}
	out := *c
	out.LastSyncedAt = clonePtr(c.LastSyncedAt)
	return &out
}
