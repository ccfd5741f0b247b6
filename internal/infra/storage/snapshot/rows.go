package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	tableEvents      = "event_configs"
	tableBookings    = "bookings"
	tableWaitlist    = "waitlist_entries"
	tableConnections = "calendar_connections"
)

var eventColumns = []string{
	"id",
	"position",
	"name",
	"description",
	"location",
	"timezone",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"max_bookings_per_day",
	"minimum_notice_minutes",
	"scheduling_window_days",
	"weekly_schedule",
	"date_overrides",
	"max_attendees",
	"waitlist_enabled",
	"waitlist_capacity",
	"created_at",
	"updated_at",
}

var bookingColumns = []string{
	"id",
	"position",
	"event_config_id",
	"booking_date",
	"start_time",
	"end_time",
	"timezone",
	"status",
	"attendees",
	"notes",
	"cancel_reason",
	"reschedule_reason",
	"recurrence_group_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

var waitlistColumns = []string{
	"id",
	"position",
	"event_config_id",
	"entry_date",
	"slot_start",
	"slot_end",
	"name",
	"email",
	"status",
	"notified_at",
	"created_at",
	"updated_at",
}

var connectionColumns = []string{
	"id",
	"position",
	"provider",
	"sync_direction",
	"check_conflicts",
	"connected",
	"last_synced_at",
	"imported_events",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func eventValues(position int, e *domain.EventConfig) ([]interface{}, error) {
	location, err := json.Marshal(e.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s location: %v", ErrEncode, e.ID, err)
	}
	schedule, err := json.Marshal(e.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s weekly_schedule: %v", ErrEncode, e.ID, err)
	}
	overrides := e.DateOverrides
	if overrides == nil {
		overrides = []domain.DateOverride{}
	}
	overridesJSON, err := json.Marshal(overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s date_overrides: %v", ErrEncode, e.ID, err)
	}

	return []interface{}{
		e.ID,
		position,
		e.Name,
		e.Description,
		location,
		e.Timezone,
		e.DurationMinutes,
		e.BufferBeforeMinutes,
		e.BufferAfterMinutes,
		e.MaxBookingsPerDay,
		e.MinimumNoticeMinutes,
		e.SchedulingWindowDays,
		schedule,
		overridesJSON,
		e.MaxAttendees,
		e.WaitlistEnabled,
		e.WaitlistCapacity,
		e.CreatedAt,
		e.UpdatedAt,
	}, nil
}

func scanEvent(row rowScanner) (*domain.EventConfig, error) {
	var (
		e        domain.EventConfig
		position int

		location, schedule, overridesJS []byte
	)
	err := row.Scan(
		&e.ID,
		&position,
		&e.Name,
		&e.Description,
		&location,
		&e.Timezone,
		&e.DurationMinutes,
		&e.BufferBeforeMinutes,
		&e.BufferAfterMinutes,
		&e.MaxBookingsPerDay,
		&e.MinimumNoticeMinutes,
		&e.SchedulingWindowDays,
		&schedule,
		&overridesJS,
		&e.MaxAttendees,
		&e.WaitlistEnabled,
		&e.WaitlistCapacity,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan event: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(location, &e.Location); err != nil {
		return nil, fmt.Errorf("%w: event %s location: %v", ErrScanRow, e.ID, err)
	}
	if err := json.Unmarshal(schedule, &e.WeeklySchedule); err != nil {
		return nil, fmt.Errorf("%w: event %s weekly_schedule: %v", ErrScanRow, e.ID, err)
	}
	if err := json.Unmarshal(overridesJS, &e.DateOverrides); err != nil {
		return nil, fmt.Errorf("%w: event %s date_overrides: %v", ErrScanRow, e.ID, err)
	}
	for i := range e.DateOverrides {
		e.DateOverrides[i].Date = calendar.DateOf(e.DateOverrides[i].Date)
	}

	return &e, nil
}

func bookingValues(position int, b *domain.Booking) ([]interface{}, error) {
	attendees := b.Attendees
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	attendeesJSON, err := json.Marshal(attendees)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s attendees: %v", ErrEncode, b.ID, err)
	}

	return []interface{}{
		b.ID,
		position,
		b.EventConfigID,
		calendar.FormatISODate(b.Date),
		b.StartTime,
		b.EndTime,
		b.Timezone,
		string(b.Status),
		attendeesJSON,
		b.Notes,
		b.CancelReason,
		b.RescheduleReason,
		b.RecurrenceGroupID,
		b.CancelledAt,
		b.CreatedAt,
		b.UpdatedAt,
	}, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		position    int
		status      string
		attendees   []byte
		cancelledAt sql.NullTime

		cancelReason, rescheduleReason, recurrenceID sql.NullString
	)
	err := row.Scan(
		&b.ID,
		&position,
		&b.EventConfigID,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Timezone,
		&status,
		&attendees,
		&b.Notes,
		&cancelReason,
		&rescheduleReason,
		&recurrenceID,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(attendees, &b.Attendees); err != nil {
		return nil, fmt.Errorf("%w: booking %s attendees: %v", ErrScanRow, b.ID, err)
	}

	b.Date = calendar.DateOf(b.Date)
	b.Status = domain.BookingStatus(status)
	b.CancelReason = nullString(cancelReason)
	b.RescheduleReason = nullString(rescheduleReason)
	b.RecurrenceGroupID = nullString(recurrenceID)
	b.CancelledAt = nullTime(cancelledAt)

	return &b, nil
}

func waitlistValues(position int, w *domain.WaitlistEntry) []interface{} {
	return []interface{}{
		w.ID,
		position,
		w.EventConfigID,
		calendar.FormatISODate(w.Date),
		w.TimeSlot.Start,
		w.TimeSlot.End,
		w.Name,
		w.Email,
		string(w.Status),
		w.NotifiedAt,
		w.CreatedAt,
		w.UpdatedAt,
	}
}

func scanWaitlistEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var (
		w          domain.WaitlistEntry
		position   int
		status     string
		notifiedAt sql.NullTime
	)
	err := row.Scan(
		&w.ID,
		&position,
		&w.EventConfigID,
		&w.Date,
		&w.TimeSlot.Start,
		&w.TimeSlot.End,
		&w.Name,
		&w.Email,
		&status,
		&notifiedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan waitlist entry: %v", ErrScanRow, err)
	}

	w.Date = calendar.DateOf(w.Date)
	w.Status = domain.WaitlistStatus(status)
	w.NotifiedAt = nullTime(notifiedAt)

	return &w, nil
}

func connectionValues(position int, c *domain.CalendarConnection) []interface{} {
	return []interface{}{
		c.ID,
		position,
		string(c.Provider),
		string(c.SyncDirection),
		c.CheckConflicts,
		c.Connected,
		c.LastSyncedAt,
		c.ImportedEvents,
		c.CreatedAt,
		c.UpdatedAt,
	}
}

func scanConnection(row rowScanner) (*domain.CalendarConnection, error) {
	var (
		c                   domain.CalendarConnection
		position            int
		provider, direction string
		lastSyncedAt        sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&position,
		&provider,
		&direction,
		&c.CheckConflicts,
		&c.Connected,
		&lastSyncedAt,
		&c.ImportedEvents,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scan calendar connection: %v", ErrScanRow, err)
	}

	c.Provider = domain.CalendarProvider(provider)
	c.SyncDirection = domain.SyncDirection(direction)
	c.LastSyncedAt = nullTime(lastSyncedAt)

	return &c, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return ptr.Ptr(v.String)
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return ptr.Ptr(v.Time)
}
