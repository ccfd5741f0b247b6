package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
)

var validate = validator.New()

// Service сервис листа ожидания
type Service struct {
	repo         WaitlistRepository
	eventRepo    EventRepository
	locks        LockManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	repo WaitlistRepository,
	eventRepo EventRepository,
	locks LockManager,
	metrics MetricsCollector,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		eventRepo:    eventRepo,
		locks:        locks,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AddEntry добавляет запись в лист ожидания со статусом waiting
func (s *Service) AddEntry(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("AddEntry: event=%s, date=%s, slot=%s, email=%s",
		req.EventConfigID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.Email)

	if err := validateAddEntry(req); err != nil {
		s.logger.Warn("AddEntry: validation failed: %v", err)
		return nil, err
	}

	cfg, err := s.eventRepo.GetEvent(ctx, req.EventConfigID)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			s.logger.Warn("AddEntry: event id=%s not found", req.EventConfigID)
			return nil, ErrEventNotFound
		}
		s.logger.Error("AddEntry: repository error for event id=%s: %v", req.EventConfigID, err)
		return nil, fmt.Errorf("%w: AddEntry - repository error: %v", ErrInternal, err)
	}

	if !cfg.WaitlistEnabled {
		s.logger.Warn("AddEntry: waitlist disabled for event id=%s", cfg.ID)
		return nil, ErrWaitlistDisabled
	}

	date := calendar.DateOf(req.Date)
	var created *domain.WaitlistEntry

	// Проверка вместимости и вставка под блокировкой пары (событие, дата)
	err = s.locks.Do(ctx, []string{lockmanager.Key("waitlist", lockmanager.DayKey(cfg.ID, date))}, func(lockCtx context.Context) error {
		entries, err := s.repo.ListWaitlist(lockCtx, cfg.ID, &date)
		if err != nil {
			s.logger.Error("AddEntry: failed to list waitlist: %v", err)
			return fmt.Errorf("%w: AddEntry - repository error: %v", ErrInternal, err)
		}

		waiting := 0
		for _, e := range entries {
			if e.Status != domain.WaitlistWaiting {
				continue
			}
			waiting++
			if strings.EqualFold(e.Email, req.Email) {
				return ErrAlreadyWaiting
			}
		}

		if cfg.WaitlistCapacity > 0 && waiting >= cfg.WaitlistCapacity {
			s.logger.Warn("AddEntry: waitlist full for event id=%s on %s (%d/%d)",
				cfg.ID, date.Format(domain.DateFormat), waiting, cfg.WaitlistCapacity)
			return ErrWaitlistFull
		}

		entry, err := s.repo.CreateWaitlistEntry(lockCtx, &domain.WaitlistEntry{
			EventConfigID: cfg.ID,
			Date:          date,
			TimeSlot:      req.TimeSlot,
			Name:          strings.TrimSpace(req.Name),
			Email:         strings.TrimSpace(req.Email),
			Status:        domain.WaitlistWaiting,
			CreatedAt:     s.timeProvider.Now(),
		})
		if err != nil {
			s.logger.Error("AddEntry: failed to create entry: %v", err)
			return fmt.Errorf("%w: AddEntry - repository error: %v", ErrInternal, err)
		}

		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddEntry: successfully added entry id=%s", created.ID)
	return models.FromDomainEntry(created), nil
}

// Approve переводит запись в approved
func (s *Service) Approve(ctx context.Context, id string) (*models.EntryResponse, error) {
	return s.transition(ctx, "Approve", id, domain.WaitlistApproved)
}

// Reject переводит запись в rejected
func (s *Service) Reject(ctx context.Context, id string) (*models.EntryResponse, error) {
	return s.transition(ctx, "Reject", id, domain.WaitlistRejected)
}

// Remove удаляет запись. Удалять можно только записи в финальном статусе
func (s *Service) Remove(ctx context.Context, id string) error {
	s.logger.Info("Remove: removing waitlist entry id=%s", id)

	return s.locks.Do(ctx, []string{entryKey(id)}, func(lockCtx context.Context) error {
		entry, err := s.getEntry(lockCtx, "Remove", id)
		if err != nil {
			return err
		}

		if !entry.Status.IsResolved() {
			s.logger.Warn("Remove: entry id=%s is still %s", id, entry.Status)
			return fmt.Errorf("%w: status=%s", ErrNotResolved, entry.Status)
		}

		if err := s.repo.DeleteWaitlistEntry(lockCtx, id); err != nil {
			if errors.Is(err, memory.ErrWaitlistEntryNotFound) {
				return ErrEntryNotFound
			}
			s.logger.Error("Remove: repository error for entry id=%s: %v", id, err)
			return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Remove: successfully removed entry id=%s", id)
		return nil
	})
}

// NotifyNext переводит самую раннюю ожидающую запись пары (событие, дата) в notified.
// Возвращает nil, если ожидающих нет
func (s *Service) NotifyNext(ctx context.Context, eventConfigID string, date time.Time) (*domain.WaitlistEntry, error) {
	entry, err := s.repo.PromoteNextWaiting(ctx, eventConfigID, calendar.DateOf(date))
	if err != nil {
		s.logger.Error("NotifyNext: repository error for event=%s, date=%s: %v",
			eventConfigID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: NotifyNext - repository error: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.WaitlistPromotion(entry != nil)
	}

	if entry == nil {
		s.logger.Info("NotifyNext: nobody is waiting for event=%s, date=%s", eventConfigID, date.Format(domain.DateFormat))
		return nil, nil
	}

	s.logger.Info("NotifyNext: notified entry id=%s (%s) for event=%s, date=%s",
		entry.ID, entry.Email, eventConfigID, date.Format(domain.DateFormat))
	return entry, nil
}

// ExpireNotified переводит в expired записи, которые находятся в notified дольше ttl.
// Возвращает количество истёкших записей
func (s *Service) ExpireNotified(ctx context.Context, ttl time.Duration) (int, error) {
	entries, err := s.repo.ListWaitlist(ctx, "", nil)
	if err != nil {
		s.logger.Error("ExpireNotified: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireNotified - repository error: %v", ErrInternal, err)
	}

	deadline := s.timeProvider.Now().Add(-ttl)
	expired := 0

	for _, e := range entries {
		if e.Status != domain.WaitlistNotified || e.NotifiedAt == nil || e.NotifiedAt.After(deadline) {
			continue
		}
		if _, err := s.transition(ctx, "ExpireNotified", e.ID, domain.WaitlistExpired); err != nil {
			// Запись могли одобрить или отклонить параллельно
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("ExpireNotified: expired %d entries", expired)
	}
	return expired, nil
}

// List возвращает записи события, опционально на дату
func (s *Service) List(ctx context.Context, eventConfigID string, date *time.Time) (*models.EntryListResponse, error) {
	s.logger.Info("List: fetching waitlist for event=%s", eventConfigID)

	var day *time.Time
	if date != nil {
		d := calendar.DateOf(*date)
		day = &d
	}

	entries, err := s.repo.ListWaitlist(ctx, eventConfigID, day)
	if err != nil {
		s.logger.Error("List: repository error for event=%s: %v", eventConfigID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries), nil
}

// Вспомогательные методы

// transition переводит запись в новый статус только вперёд по жизненному циклу
func (s *Service) transition(ctx context.Context, op string, id string, next domain.WaitlistStatus) (*models.EntryResponse, error) {
	s.logger.Info("%s: moving waitlist entry id=%s to %s", op, id, next)

	var updated *domain.WaitlistEntry
	err := s.locks.Do(ctx, []string{entryKey(id)}, func(lockCtx context.Context) error {
		entry, err := s.getEntry(lockCtx, op, id)
		if err != nil {
			return err
		}

		if !entry.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: entry id=%s cannot move from %s to %s", op, id, entry.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, next)
		}

		entry.Status = next
		saved, err := s.repo.UpdateWaitlistEntry(lockCtx, entry)
		if err != nil {
			s.logger.Error("%s: repository error for entry id=%s: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		updated = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainEntry(updated), nil
}

func (s *Service) getEntry(ctx context.Context, op string, id string) (*domain.WaitlistEntry, error) {
	entry, err := s.repo.GetWaitlistEntry(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrWaitlistEntryNotFound) {
			s.logger.Warn("%s: entry id=%s not found", op, id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("%s: repository error for entry id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return entry, nil
}

func entryKey(id string) string {
	return lockmanager.Key("waitlist-entry", id)
}

func validateAddEntry(req *models.AddEntryRequest) error {
	if req.EventConfigID == "" {
		return fmt.Errorf("%w: eventConfigId is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(req.Name) == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is invalid", ErrInvalidInput)
	}
	if err := validate.Var(req.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	return nil
}
