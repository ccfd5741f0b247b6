package create_recurring_bookings

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// expandDates разворачивает запрос в упорядоченный список уникальных дат серии
func expandDates(req *Request) ([]time.Time, error) {
	switch {
	case len(req.Dates) > 0:
		return explicitDates(req.Dates)
	case req.RRule != "":
		return ruleDates(req.RRule, calendar.DateOf(req.StartDate))
	default:
		return frequencyDates(req.Frequency, req.Count, calendar.DateOf(req.StartDate))
	}
}

func explicitDates(dates []time.Time) ([]time.Time, error) {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := calendar.DateOf(d)
		if _, ok := seen[day]; ok {
			return nil, fmt.Errorf("%w: date %s listed twice", ErrInvalidRecurrence, calendar.FormatISODate(day))
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return checkCount(out)
}

func frequencyDates(freq Frequency, count int, start time.Time) ([]time.Time, error) {
	opt := rrule.ROption{
		Dtstart: start,
		Count:   count,
	}

	switch freq {
	case FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 1
	case FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Interval = 1
	default:
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrence, freq)
	}

	if count < domain.MinRecurringOccurrences || count > domain.MaxRecurringOccurrences {
		return nil, fmt.Errorf("%w: count must be %d..%d", ErrInvalidRecurrence,
			domain.MinRecurringOccurrences, domain.MaxRecurringOccurrences)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	return collect(r)
}

func ruleDates(raw string, start time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	r.DTStart(start)
	return collect(r)
}

// collect берёт не больше MaxRecurringOccurrences+1 повторений, чтобы бесконечное правило
// не разворачивалось целиком
func collect(r *rrule.RRule) ([]time.Time, error) {
	next := r.Iterator()
	out := make([]time.Time, 0, domain.MinRecurringOccurrences)
	for len(out) <= domain.MaxRecurringOccurrences {
		t, ok := next()
		if !ok {
			break
		}
		out = append(out, calendar.DateOf(t))
	}
	return checkCount(out)
}

func checkCount(dates []time.Time) ([]time.Time, error) {
	if len(dates) > domain.MaxRecurringOccurrences {
		return nil, fmt.Errorf("%w: at most %d allowed", ErrTooManyOccurrences, domain.MaxRecurringOccurrences)
	}
	if len(dates) < domain.MinRecurringOccurrences {
		return nil, fmt.Errorf("%w: a series needs at least %d occurrences", ErrInvalidRecurrence,
			domain.MinRecurringOccurrences)
	}
	return dates, nil
}
