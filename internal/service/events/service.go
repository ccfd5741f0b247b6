package events

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/events/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

// Service сервис для работы с конфигурациями событий
type Service struct {
	eventRepo EventRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса конфигураций событий
func NewService(eventRepo EventRepository, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Create создает новую конфигурацию события
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event name=%q, timezone=%s", req.Name, req.Timezone)

	// 1. Конвертируем и применяем значения по умолчанию
	cfg, err := req.ToDomainEvent()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем конфигурацию
	if err := ValidateEvent(cfg); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.eventRepo.CreateEvent(ctx, cfg)
	if err != nil {
		if errors.Is(err, memory.ErrDuplicateID) {
			s.logger.Warn("Create: event id=%s already exists", cfg.ID)
			return nil, ErrEventAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created event id=%s", created.ID)
	return models.FromDomainEvent(created), nil
}

// GetByID получает конфигурацию по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.EventResponse, error) {
	s.logger.Info("GetByID: fetching event id=%s", id)

	cfg, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEvent(cfg), nil
}

// Get получает конфигурацию по ID в виде domain модели
func (s *Service) Get(ctx context.Context, id string) (*domain.EventConfig, error) {
	return s.get(ctx, "Get", id)
}

// List получает все конфигурации
func (s *Service) List(ctx context.Context) (*models.EventListResponse, error) {
	configs, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d events", len(configs))
	return models.FromDomainEventList(configs), nil
}

// Update обновляет существующую конфигурацию
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Update: updating event id=%s", id)

	// 1. Получаем существующую конфигурацию
	cfg, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	// 2. Применяем обновления к копии и валидируем
	updated := cfg.Clone()
	if err := req.ApplyToEvent(updated); err != nil {
		s.logger.Warn("Update: invalid request for event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := ValidateEvent(updated); err != nil {
		s.logger.Warn("Update: validation failed for event id=%s: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.eventRepo.UpdateEvent(ctx, updated)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			s.logger.Warn("Update: event id=%s not found during update", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Update: repository error for event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated event id=%s", id)
	return models.FromDomainEvent(saved), nil
}

func (s *Service) get(ctx context.Context, op string, id string) (*domain.EventConfig, error) {
	cfg, err := s.eventRepo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			s.logger.Warn("%s: event id=%s not found", op, id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("%s: repository error for event id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return cfg, nil
}

// ValidateEvent валидирует параметры конфигурации события
func ValidateEvent(cfg *domain.EventConfig) error {
	if cfg.Name == "" || utf8.RuneCountInString(cfg.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if _, err := tzconv.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, cfg.Timezone)
	}

	if err := checkRange("durationMinutes", cfg.DurationMinutes, domain.MinDurationMinutes, domain.MaxDurationMinutes); err != nil {
		return err
	}
	if err := checkRange("bufferBeforeMinutes", cfg.BufferBeforeMinutes, 0, domain.MaxBufferMinutes); err != nil {
		return err
	}
	if err := checkRange("bufferAfterMinutes", cfg.BufferAfterMinutes, 0, domain.MaxBufferMinutes); err != nil {
		return err
	}
	if err := checkRange("maxBookingsPerDay", cfg.MaxBookingsPerDay, 0, domain.MaxBookingsPerDayLimit); err != nil {
		return err
	}
	if err := checkRange("minimumNoticeMinutes", cfg.MinimumNoticeMinutes, 0, domain.MaxMinimumNoticeMinutes); err != nil {
		return err
	}
	if err := checkRange("schedulingWindowDays", cfg.SchedulingWindowDays, domain.MinSchedulingWindowDays, domain.MaxSchedulingWindowDays); err != nil {
		return err
	}
	if err := checkRange("maxAttendees", cfg.MaxAttendees, 0, domain.MaxAttendeesLimit); err != nil {
		return err
	}
	if err := checkRange("waitlistCapacity", cfg.WaitlistCapacity, 0, domain.MaxWaitlistCapacity); err != nil {
		return err
	}

	switch cfg.Location.Type {
	case domain.LocationInPerson, domain.LocationPhone, domain.LocationVideo, domain.LocationCustom:
	case "":
		cfg.Location.Type = domain.LocationCustom
	default:
		return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, cfg.Location.Type)
	}

	for i, day := range cfg.WeeklySchedule {
		if err := validateRanges(day.Ranges); err != nil {
			return fmt.Errorf("%w: weeklySchedule.%s: %v", ErrInvalidInput, models.WeekdayNames[i], err)
		}
	}

	seen := make(map[string]struct{}, len(cfg.DateOverrides))
	for _, o := range cfg.DateOverrides {
		key := calendar.FormatISODate(o.Date)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate override for %s", ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
		if err := validateRanges(o.Ranges); err != nil {
			return fmt.Errorf("%w: dateOverrides.%s: %v", ErrInvalidInput, key, err)
		}
	}

	return nil
}

func checkRange(field string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidInput, field, min, max)
	}
	return nil
}

// validateRanges проверяет, что каждый диапазон корректен и диапазоны не пересекаются
func validateRanges(ranges []domain.TimeRange) error {
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	sorted := append([]domain.TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMinutes() < sorted[j].StartMinutes() })
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return fmt.Errorf("ranges %s and %s overlap", sorted[i-1], sorted[i])
		}
	}
	return nil
}
