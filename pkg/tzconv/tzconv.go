// Package tzconv converts wall-clock times between IANA zones for a given date.
package tzconv

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrUnknownZone is returned when a zone name is not in the IANA database
	ErrUnknownZone = errors.New("tzconv: unknown time zone")
)

// Result is a converted wall-clock time together with the calendar date it
// falls on in the target zone.
type Result struct {
	Time types.TimeString
	Date time.Time
	// DayOffset is -1, 0 or +1 relative to the source date.
	DayOffset int
}

var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

// LoadLocation loads and caches an IANA zone.
func LoadLocation(name string) (*time.Location, error) {
	locMu.RLock()
	loc, ok := locCache[name]
	locMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, name, err)
	}

	locMu.Lock()
	locCache[name] = loc
	locMu.Unlock()
	return loc, nil
}

// ConvertTime interprets t on date in fromZone and returns the equivalent wall-clock
// time and date in toZone. Offsets are taken from the zone database at that date.
func ConvertTime(t types.TimeString, fromZone, toZone string, date time.Time) (Result, error) {
	from, err := LoadLocation(fromZone)
	if err != nil {
		return Result{}, err
	}
	to, err := LoadLocation(toZone)
	if err != nil {
		return Result{}, err
	}
	return Convert(t, from, to, date), nil
}

// Convert is ConvertTime for already loaded locations.
func Convert(t types.TimeString, from, to *time.Location, date time.Time) Result {
	src := calendar.DateOf(date)
	converted := t.On(src, from).In(to)
	dst := calendar.DateOf(converted)

	return Result{
		Time:      types.NewTimeString(converted),
		Date:      dst,
		DayOffset: calendar.DaysBetween(src, dst),
	}
}

// FormatOffset returns the UTC offset of loc at noon of date as ±HH:MM.
// UTC is rendered as +00:00.
func FormatOffset(loc *time.Location, date time.Time) string {
	_, offset := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc).Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}
