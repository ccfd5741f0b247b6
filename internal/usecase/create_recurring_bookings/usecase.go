package create_recurring_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

const operationName = "create_recurring"

// UseCase use case для создания серии повторяющихся бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	locks        LockManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	locks LockManager,
	metrics MetricsCollector,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		locks:        locks,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания серии.
// Все даты серии блокируются одновременно; если хотя бы одно повторение недоступно,
// не создаётся ни одно бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.BookingOperation(operationName, err)
	}
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBookings: event=%s, start=%s, time=%s, frequency=%s, count=%d, rrule=%q, dates=%d",
		req.EventConfigID, req.StartDate.Format(domain.DateFormat), req.StartTime,
		req.Frequency, req.Count, req.RRule, len(req.Dates))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Разворачиваем правило в даты
	dates, err := expandDates(req)
	if err != nil {
		uc.logger.Warn("CreateRecurringBookings: failed to expand dates: %v", err)
		return nil, err
	}

	// 3. Получаем конфигурацию события
	cfg, err := uc.eventRepo.GetEvent(ctx, req.EventConfigID)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			uc.logger.Warn("CreateRecurringBookings: event id=%s not found", req.EventConfigID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateRecurringBookings: failed to get event id=%s: %v", req.EventConfigID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	if len(req.Attendees) > cfg.AttendeeLimit() {
		return nil, fmt.Errorf("%w: %d attendees, limit is %d", ErrTooManyAttendees, len(req.Attendees), cfg.AttendeeLimit())
	}

	loc, err := tzconv.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("CreateRecurringBookings: event id=%s has invalid timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: invalid event timezone: %v", ErrInternal, err)
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = lockmanager.DayKey(cfg.ID, d)
	}

	now := uc.timeProvider.Now()
	var created []*domain.Booking

	// 4. Проверяем все повторения и создаём серию под блокировками всех дат
	err = uc.locks.Do(ctx, keys, func(lockCtx context.Context) error {
		batch := make([]*domain.Booking, 0, len(dates))

		for _, date := range dates {
			if err := uc.checkOccurrence(lockCtx, req, cfg, date, now, loc); err != nil {
				return err
			}

			batch = append(batch, &domain.Booking{
				EventConfigID: cfg.ID,
				Date:          date,
				StartTime:     req.StartTime,
				EndTime:       req.StartTime.AddMinutes(cfg.DurationMinutes),
				Timezone:      cfg.Timezone,
				Status:        domain.StatusConfirmed,
				Attendees:     req.Attendees,
				Notes:         req.Notes,
			})
		}

		result, err := uc.bookingRepo.CreateRecurringBatch(lockCtx, batch)
		if err != nil {
			uc.logger.Error("CreateRecurringBookings: failed to create batch: %v", err)
			return fmt.Errorf("%w: failed to create batch: %v", ErrInternal, err)
		}

		created = result
		return nil
	})

	if err != nil {
		if errors.Is(err, lockmanager.ErrLockAborted) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	groupID := ptr.Value(created[0].RecurrenceGroupID)
	uc.logger.Info("CreateRecurringBookings: created %d bookings in group=%s", len(created), groupID)

	return &Response{
		RecurrenceGroupID: groupID,
		Bookings:          created,
	}, nil
}

// checkOccurrence проверяет одно повторение: дубликаты участников и доступность слота
func (uc *UseCase) checkOccurrence(
	ctx context.Context,
	req *Request,
	cfg *domain.EventConfig,
	date time.Time,
	now time.Time,
	loc *time.Location,
) error {
	day := calendar.FormatISODate(date)

	if !req.AllowDuplicate {
		for _, a := range req.Attendees {
			duplicate, err := uc.bookingRepo.HasDuplicateBooking(ctx, a.Email, cfg.ID, date)
			if err != nil {
				uc.logger.Error("CreateRecurringBookings: failed to check duplicate: %v", err)
				return fmt.Errorf("%w: failed to check duplicate: %v", ErrInternal, err)
			}
			if duplicate {
				uc.logger.Warn("CreateRecurringBookings: duplicate booking for %s on %s", a.Email, day)
				return fmt.Errorf("%w: %s on %s", ErrDuplicateBooking, a.Email, day)
			}
		}
	}

	bookings, err := uc.bookingRepo.BookingsForDate(ctx, cfg.ID, date)
	if err != nil {
		uc.logger.Error("CreateRecurringBookings: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	reason := get_available_slots.CheckSlot(date, req.StartTime, cfg, bookings, "", now, loc)
	if reason != get_available_slots.ReasonAvailable {
		uc.logger.Warn("CreateRecurringBookings: occurrence %s %s rejected: %s", day, req.StartTime, reason)
		return fmt.Errorf("%w: %s %s: %s", ErrOccurrenceUnavailable, day, req.StartTime, reason)
	}

	return nil
}
