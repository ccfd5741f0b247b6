package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Reason объясняет, почему для даты нет слотов
type Reason string

const (
	ReasonAvailable     Reason = "available"
	ReasonOutsideWindow Reason = "outside_window"
	ReasonDayOff        Reason = "day_off"
	ReasonNotScheduled  Reason = "not_scheduled"
	ReasonDayFull       Reason = "day_full"
	ReasonNoFreeSlots   Reason = "no_free_slots"

	// Причины отказа при проверке конкретного слота (CheckSlot)
	ReasonOutsideHours Reason = "outside_hours"
	ReasonTooLate      Reason = "too_late"
	ReasonConflict     Reason = "conflict"
)

// GenerateSlots возвращает упорядоченный список слотов, доступных для бронирования на дату.
// "Сегодня" и минимальное время до начала считаются в loc (часовой пояс события).
// Пустой результат всегда сопровождается причиной.
func GenerateSlots(
	date time.Time,
	cfg *domain.EventConfig,
	bookings []*domain.Booking,
	now time.Time,
	loc *time.Location,
) ([]domain.TimeRange, Reason) {
	day := calendar.DateOf(date)

	ranges, reason := openRangesForDay(day, cfg, bookings, now, loc)
	if reason != ReasonAvailable {
		return []domain.TimeRange{}, reason
	}

	active := activeBookingsOn(day, cfg, bookings)
	noticeDeadline := now.Add(time.Duration(cfg.MinimumNoticeMinutes) * time.Minute)

	slots := make([]domain.TimeRange, 0)
	for _, r := range ranges {
		rangeEnd := r.EndMinutes()

		// Шагаем курсором с шагом длительности, пока слот целиком помещается в диапазон
		for cursor := r.StartMinutes(); cursor+cfg.DurationMinutes <= rangeEnd; cursor += cfg.DurationMinutes {
			slotEnd := cursor + cfg.DurationMinutes

			if conflictsWithBookings(cursor, slotEnd, cfg, active) {
				continue
			}

			startsAt := time.Date(day.Year(), day.Month(), day.Day(), cursor/60, cursor%60, 0, 0, loc)
			if !startsAt.After(noticeDeadline) {
				continue
			}

			slots = append(slots, domain.TimeRange{
				Start: types.NewTimeStringFromMinutes(cursor),
				End:   types.NewTimeStringFromMinutes(slotEnd),
			})
		}
	}

	if len(slots) == 0 {
		return slots, ReasonNoFreeSlots
	}
	return slots, ReasonAvailable
}

// IsDateAvailable дешёвая проверка даты для включения ячейки календаря.
// Использует те же правила окна, переопределений, расписания и дневного лимита, что и GenerateSlots,
// но НЕ учитывает минимальное время до начала и буферы. Поэтому дата может считаться доступной,
// а GenerateSlots вернёт для неё пустой список.
func IsDateAvailable(
	date time.Time,
	cfg *domain.EventConfig,
	bookings []*domain.Booking,
	now time.Time,
	loc *time.Location,
) bool {
	_, reason := openRangesForDay(calendar.DateOf(date), cfg, bookings, now, loc)
	return reason == ReasonAvailable
}

// NextAvailableDate ищет первую дату начиная с from (включительно), для которой IsDateAvailable = true.
// Просматривает не больше min(90, SchedulingWindowDays) дней.
func NextAvailableDate(
	from time.Time,
	cfg *domain.EventConfig,
	bookings []*domain.Booking,
	now time.Time,
	loc *time.Location,
) (time.Time, bool) {
	limit := cfg.SchedulingWindowDays
	if limit > domain.NextAvailableScanDays {
		limit = domain.NextAvailableScanDays
	}

	start := calendar.DateOf(from)
	for i := 0; i < limit; i++ {
		candidate := calendar.AddDays(start, i)
		if IsDateAvailable(candidate, cfg, bookings, now, loc) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// CheckSlot проверяет на момент записи, что слот [start, start+duration) на дату мог бы быть
// выдан GenerateSlots. exceptID исключает бронирование из проверки (перенос самого себя).
// Возвращает ReasonAvailable, если слот можно занять.
func CheckSlot(
	date time.Time,
	start types.TimeString,
	cfg *domain.EventConfig,
	bookings []*domain.Booking,
	exceptID string,
	now time.Time,
	loc *time.Location,
) Reason {
	day := calendar.DateOf(date)

	others := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && (exceptID == "" || b.ID != exceptID) {
			others = append(others, b)
		}
	}

	ranges, reason := openRangesForDay(day, cfg, others, now, loc)
	if reason != ReasonAvailable {
		return reason
	}

	slotStart := start.Minutes()
	slotEnd := slotStart + cfg.DurationMinutes
	if !onSlotGrid(slotStart, cfg.DurationMinutes, ranges) {
		return ReasonOutsideHours
	}

	startsAt := time.Date(day.Year(), day.Month(), day.Day(), slotStart/60, slotStart%60, 0, 0, loc)
	if !startsAt.After(now.Add(time.Duration(cfg.MinimumNoticeMinutes) * time.Minute)) {
		return ReasonTooLate
	}

	if conflictsWithBookings(slotStart, slotEnd, cfg, activeBookingsOn(day, cfg, others)) {
		return ReasonConflict
	}
	return ReasonAvailable
}

// onSlotGrid true, если слот совпадает с одним из шагов курсора GenerateSlots
func onSlotGrid(slotStart, duration int, ranges []domain.TimeRange) bool {
	for _, r := range ranges {
		offset := slotStart - r.StartMinutes()
		if offset < 0 || offset%duration != 0 {
			continue
		}
		if slotStart+duration <= r.EndMinutes() {
			return true
		}
	}
	return false
}

// openRangesForDay шаги 1-4: окно бронирования, переопределения, недельное расписание, дневной лимит
func openRangesForDay(
	day time.Time,
	cfg *domain.EventConfig,
	bookings []*domain.Booking,
	now time.Time,
	loc *time.Location,
) ([]domain.TimeRange, Reason) {
	if !withinWindow(day, cfg.SchedulingWindowDays, now, loc) {
		return nil, ReasonOutsideWindow
	}

	ranges, overridden, ok := cfg.OpenRanges(day)
	if !ok {
		if overridden {
			return nil, ReasonDayOff
		}
		return nil, ReasonNotScheduled
	}

	if cfg.HasDailyLimit() && len(activeBookingsOn(day, cfg, bookings)) >= cfg.MaxBookingsPerDay {
		return nil, ReasonDayFull
	}

	return ranges, ReasonAvailable
}

// withinWindow проверяет, что today <= day <= today + windowDays
func withinWindow(day time.Time, windowDays int, now time.Time, loc *time.Location) bool {
	today := calendar.Today(now, loc)
	if day.Before(today) {
		return false
	}
	return !day.After(calendar.AddDays(today, windowDays))
}

// activeBookingsOn возвращает неотменённые бронирования события на дату
func activeBookingsOn(day time.Time, cfg *domain.EventConfig, bookings []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || b.IsCancelled() {
			continue
		}
		if cfg.ID != "" && b.EventConfigID != cfg.ID {
			continue
		}
		if !calendar.IsSameDay(b.Date, day) {
			continue
		}
		active = append(active, b)
	}
	return active
}

// conflictsWithBookings проверяет пересечение слота, расширенного буферами,
// с "сырыми" интервалами бронирований. Граничащие интервалы не пересекаются.
//
// Пример (буферы 15/15): слот 09:30-10:00 -> 09:15-10:15 пересекается с бронью 10:00-10:30
func conflictsWithBookings(slotStart, slotEnd int, cfg *domain.EventConfig, active []*domain.Booking) bool {
	bufferedStart := slotStart - cfg.BufferBeforeMinutes
	bufferedEnd := slotEnd + cfg.BufferAfterMinutes

	for _, b := range active {
		if domain.MinutesOverlap(bufferedStart, bufferedEnd, b.StartTime.Minutes(), b.EndTime.Minutes()) {
			return true
		}
	}
	return false
}
