package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

const operationName = "create"

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка слота и запись выполняются под блокировкой пары (событие, дата)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.BookingOperation(operationName, err)
	}
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: event=%s, date=%s, time=%s, attendees=%d",
		req.EventConfigID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Attendees))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию события
	cfg, err := uc.eventRepo.GetEvent(ctx, req.EventConfigID)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			uc.logger.Warn("CreateBooking: event id=%s not found", req.EventConfigID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event id=%s: %v", req.EventConfigID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	// 3. Проверяем лимит участников
	if err := validateAttendeeLimit(cfg, req.Attendees); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	loc, err := tzconv.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("CreateBooking: event id=%s has invalid timezone %q: %v", cfg.ID, cfg.Timezone, err)
		return nil, fmt.Errorf("%w: invalid event timezone: %v", ErrInternal, err)
	}

	date := calendar.DateOf(req.Date)
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 4. Проверяем слот и создаём бронирование под блокировкой
	err = uc.locks.Do(ctx, []string{lockmanager.DayKey(cfg.ID, date)}, func(lockCtx context.Context) error {
		// 4.1. Проверка дубликатов (если не разрешено явно)
		if !req.AllowDuplicate {
			for _, a := range req.Attendees {
				duplicate, err := uc.bookingRepo.HasDuplicateBooking(lockCtx, a.Email, cfg.ID, date)
				if err != nil {
					uc.logger.Error("CreateBooking: failed to check duplicate: %v", err)
					return fmt.Errorf("%w: failed to check duplicate: %v", ErrInternal, err)
				}
				if duplicate {
					uc.logger.Warn("CreateBooking: duplicate booking for %s on %s", a.Email, date.Format(domain.DateFormat))
					return fmt.Errorf("%w: %s", ErrDuplicateBooking, a.Email)
				}
			}
		}

		// 4.2. Получаем бронирования на дату
		bookings, err := uc.bookingRepo.BookingsForDate(lockCtx, cfg.ID, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.3. Слот должен быть среди тех, что выдаёт движок доступности
		reason := get_available_slots.CheckSlot(date, req.StartTime, cfg, bookings, "", now, loc)
		if err := reasonToError(reason); err != nil {
			uc.logger.Warn("CreateBooking: slot %s on %s rejected: %s",
				req.StartTime, date.Format(domain.DateFormat), reason)
			return err
		}

		// 4.4. Создаём бронирование
		booking := &domain.Booking{
			EventConfigID: cfg.ID,
			Date:          date,
			StartTime:     req.StartTime,
			EndTime:       req.StartTime.AddMinutes(cfg.DurationMinutes),
			Timezone:      cfg.Timezone,
			Status:        domain.StatusConfirmed,
			Attendees:     req.Attendees,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.CreateBooking(lockCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, lockmanager.ErrLockAborted) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return NewResponse(result), nil
}
