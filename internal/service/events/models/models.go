package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// WeekdayNames имена дней недели в JSON, индекс совпадает с time.Weekday
var WeekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Request модели

// DateOverrideRequest переопределение расписания на дату.
// Пустой список ranges закрывает день целиком
type DateOverrideRequest struct {
	Date   string             `json:"date"` // "2025-10-15"
	Ranges []domain.TimeRange `json:"ranges"`
}

// CreateEventRequest запрос на создание конфигурации события
type CreateEventRequest struct {
	ID          string          `json:"id,omitempty"` // опционально, иначе генерируется
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    domain.Location `json:"location"`
	Timezone    string          `json:"timezone"` // IANA, по умолчанию UTC

	DurationMinutes      int `json:"durationMinutes"` // по умолчанию 30
	BufferBeforeMinutes  int `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int `json:"bufferAfterMinutes"`
	MaxBookingsPerDay    int `json:"maxBookingsPerDay"` // 0 = без ограничений
	MinimumNoticeMinutes int `json:"minimumNoticeMinutes"`
	SchedulingWindowDays int `json:"schedulingWindowDays"` // по умолчанию 60

	WeeklySchedule map[string]domain.DaySchedule `json:"weeklySchedule"` // ключи: monday..sunday
	DateOverrides  []DateOverrideRequest         `json:"dateOverrides,omitempty"`

	MaxAttendees     int  `json:"maxAttendees"` // 0 = 1
	WaitlistEnabled  bool `json:"waitlistEnabled"`
	WaitlistCapacity int  `json:"waitlistCapacity"` // 0 = без ограничений
}

// UpdateEventRequest запрос на обновление конфигурации события
// Все поля опциональны - обновляются только переданные значения
type UpdateEventRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *domain.Location `json:"location,omitempty"`
	Timezone    *string          `json:"timezone,omitempty"`

	DurationMinutes      *int `json:"durationMinutes,omitempty"`
	BufferBeforeMinutes  *int `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes   *int `json:"bufferAfterMinutes,omitempty"`
	MaxBookingsPerDay    *int `json:"maxBookingsPerDay,omitempty"`
	MinimumNoticeMinutes *int `json:"minimumNoticeMinutes,omitempty"`
	SchedulingWindowDays *int `json:"schedulingWindowDays,omitempty"`

	WeeklySchedule map[string]domain.DaySchedule `json:"weeklySchedule,omitempty"`
	DateOverrides  *[]DateOverrideRequest        `json:"dateOverrides,omitempty"`

	MaxAttendees     *int  `json:"maxAttendees,omitempty"`
	WaitlistEnabled  *bool `json:"waitlistEnabled,omitempty"`
	WaitlistCapacity *int  `json:"waitlistCapacity,omitempty"`
}

// Response модели

// EventResponse ответ с данными конфигурации события
type EventResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    domain.Location `json:"location"`
	Timezone    string          `json:"timezone"`

	DurationMinutes      int `json:"durationMinutes"`
	BufferBeforeMinutes  int `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int `json:"bufferAfterMinutes"`
	MaxBookingsPerDay    int `json:"maxBookingsPerDay"`
	MinimumNoticeMinutes int `json:"minimumNoticeMinutes"`
	SchedulingWindowDays int `json:"schedulingWindowDays"`

	WeeklySchedule map[string]domain.DaySchedule `json:"weeklySchedule"`
	DateOverrides  []DateOverrideRequest         `json:"dateOverrides"`

	MaxAttendees     int  `json:"maxAttendees"`
	WaitlistEnabled  bool `json:"waitlistEnabled"`
	WaitlistCapacity int  `json:"waitlistCapacity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventListResponse ответ со списком конфигураций
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// Методы конвертации

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(c *domain.EventConfig) *EventResponse {
	if c == nil {
		return nil
	}

	resp := &EventResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Description:          c.Description,
		Location:             c.Location,
		Timezone:             c.Timezone,
		DurationMinutes:      c.DurationMinutes,
		BufferBeforeMinutes:  c.BufferBeforeMinutes,
		BufferAfterMinutes:   c.BufferAfterMinutes,
		MaxBookingsPerDay:    c.MaxBookingsPerDay,
		MinimumNoticeMinutes: c.MinimumNoticeMinutes,
		SchedulingWindowDays: c.SchedulingWindowDays,
		WeeklySchedule:       make(map[string]domain.DaySchedule, len(WeekdayNames)),
		DateOverrides:        make([]DateOverrideRequest, 0, len(c.DateOverrides)),
		MaxAttendees:         c.MaxAttendees,
		WaitlistEnabled:      c.WaitlistEnabled,
		WaitlistCapacity:     c.WaitlistCapacity,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}

	for i, name := range WeekdayNames {
		day := c.WeeklySchedule[i]
		if day.Ranges == nil {
			day.Ranges = []domain.TimeRange{}
		}
		resp.WeeklySchedule[name] = day
	}

	for _, o := range c.DateOverrides {
		ranges := o.Ranges
		if ranges == nil {
			ranges = []domain.TimeRange{}
		}
		resp.DateOverrides = append(resp.DateOverrides, DateOverrideRequest{
			Date:   calendar.FormatISODate(o.Date),
			Ranges: ranges,
		})
	}

	return resp
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(configs []*domain.EventConfig) *EventListResponse {
	resp := &EventListResponse{
		Events: make([]EventResponse, 0, len(configs)),
	}
	for _, c := range configs {
		if r := FromDomainEvent(c); r != nil {
			resp.Events = append(resp.Events, *r)
		}
	}
	return resp
}

// ToDomainEvent конвертирует CreateEventRequest в domain модель с дефолтными значениями
func (r *CreateEventRequest) ToDomainEvent() (*domain.EventConfig, error) {
	cfg := &domain.EventConfig{
		ID:                   strings.TrimSpace(r.ID),
		Name:                 strings.TrimSpace(r.Name),
		Description:          r.Description,
		Location:             r.Location,
		Timezone:             r.Timezone,
		DurationMinutes:      r.DurationMinutes,
		BufferBeforeMinutes:  r.BufferBeforeMinutes,
		BufferAfterMinutes:   r.BufferAfterMinutes,
		MaxBookingsPerDay:    r.MaxBookingsPerDay,
		MinimumNoticeMinutes: r.MinimumNoticeMinutes,
		SchedulingWindowDays: r.SchedulingWindowDays,
		MaxAttendees:         r.MaxAttendees,
		WaitlistEnabled:      r.WaitlistEnabled,
		WaitlistCapacity:     r.WaitlistCapacity,
	}

	if cfg.Timezone == "" {
		cfg.Timezone = domain.DefaultTimezone
	}
	if cfg.DurationMinutes == 0 {
		cfg.DurationMinutes = domain.DefaultDurationMinutes
	}
	if cfg.SchedulingWindowDays == 0 {
		cfg.SchedulingWindowDays = domain.DefaultSchedulingWindowDays
	}

	schedule, err := ToWeeklySchedule(r.WeeklySchedule)
	if err != nil {
		return nil, err
	}
	cfg.WeeklySchedule = schedule

	overrides, err := ToDateOverrides(r.DateOverrides)
	if err != nil {
		return nil, err
	}
	cfg.DateOverrides = overrides

	return cfg, nil
}

// ApplyToEvent применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateEventRequest) ApplyToEvent(cfg *domain.EventConfig) error {
	if r.Name != nil {
		cfg.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		cfg.Description = *r.Description
	}
	if r.Location != nil {
		cfg.Location = *r.Location
	}
	if r.Timezone != nil {
		cfg.Timezone = *r.Timezone
	}
	if r.DurationMinutes != nil {
		cfg.DurationMinutes = *r.DurationMinutes
	}
	if r.BufferBeforeMinutes != nil {
		cfg.BufferBeforeMinutes = *r.BufferBeforeMinutes
	}
	if r.BufferAfterMinutes != nil {
		cfg.BufferAfterMinutes = *r.BufferAfterMinutes
	}
	if r.MaxBookingsPerDay != nil {
		cfg.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}
	if r.MinimumNoticeMinutes != nil {
		cfg.MinimumNoticeMinutes = *r.MinimumNoticeMinutes
	}
	if r.SchedulingWindowDays != nil {
		cfg.SchedulingWindowDays = *r.SchedulingWindowDays
	}
	if r.WeeklySchedule != nil {
		schedule, err := ToWeeklySchedule(r.WeeklySchedule)
		if err != nil {
			return err
		}
		cfg.WeeklySchedule = schedule
	}
	if r.DateOverrides != nil {
		overrides, err := ToDateOverrides(*r.DateOverrides)
		if err != nil {
			return err
		}
		cfg.DateOverrides = overrides
	}
	if r.MaxAttendees != nil {
		cfg.MaxAttendees = *r.MaxAttendees
	}
	if r.WaitlistEnabled != nil {
		cfg.WaitlistEnabled = *r.WaitlistEnabled
	}
	if r.WaitlistCapacity != nil {
		cfg.WaitlistCapacity = *r.WaitlistCapacity
	}
	return nil
}

// ToWeeklySchedule конвертирует расписание с именами дней в domain.WeeklySchedule.
// Отсутствующие дни считаются выключенными
func ToWeeklySchedule(days map[string]domain.DaySchedule) (domain.WeeklySchedule, error) {
	var schedule domain.WeeklySchedule
	for name, day := range days {
		idx := weekdayIndex(name)
		if idx < 0 {
			return schedule, fmt.Errorf("unknown weekday %q", name)
		}
		day.Ranges = append([]domain.TimeRange(nil), day.Ranges...)
		schedule[idx] = day
	}
	return schedule, nil
}

// ToDateOverrides конвертирует переопределения расписания в domain модели
func ToDateOverrides(in []DateOverrideRequest) ([]domain.DateOverride, error) {
	out := make([]domain.DateOverride, 0, len(in))
	for _, o := range in {
		date, err := calendar.ParseISODate(o.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid override date %q", o.Date)
		}
		out = append(out, domain.DateOverride{
			Date:   date,
			Ranges: append([]domain.TimeRange(nil), o.Ranges...),
		})
	}
	return out, nil
}

func weekdayIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range WeekdayNames {
		if n == name {
			return i
		}
	}
	return -1
}
