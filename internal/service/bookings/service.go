package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	eventRepo    EventRepository
	waitlist     WaitlistNotifier
	locks        LockManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	location     *time.Location // часовой пояс, в котором считается "сегодня" для списков и доли неявок
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	waitlist WaitlistNotifier,
	locks LockManager,
	metrics MetricsCollector,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		waitlist:     waitlist,
		locks:        locks,
		metrics:      metrics,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// Get получает бронирование по ID в виде domain модели (для экспорта в календарь)
func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getBooking(ctx, "Get", id)
}

// ForDate возвращает все бронирования события на дату, включая отменённые
func (s *Service) ForDate(ctx context.Context, eventConfigID string, date time.Time) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.BookingsForDate(ctx, eventConfigID, calendar.DateOf(date))
	if err != nil {
		s.logger.Error("ForDate: repository error for event=%s: %v", eventConfigID, err)
		return nil, fmt.Errorf("%w: ForDate - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(bookings), nil
}

// ForEvent возвращает все бронирования события, включая отменённые
func (s *Service) ForEvent(ctx context.Context, eventConfigID string) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.BookingsForEvent(ctx, eventConfigID)
	if err != nil {
		s.logger.Error("ForEvent: repository error for event=%s: %v", eventConfigID, err)
		return nil, fmt.Errorf("%w: ForEvent - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(bookings), nil
}

// List возвращает бронирования по представлению:
// upcoming - неотменённые с датой не раньше сегодняшней, по возрастанию;
// past - неотменённые с датой раньше сегодняшней, по убыванию;
// cancelled - отменённые, по убыванию;
// all - все, по убыванию
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	view := req.View
	if view == "" {
		view = domain.ViewAll
	}
	s.logger.Info("List: fetching bookings view=%s", view)

	filter := domain.BookingsFilter{
		EventConfigID:   req.EventConfigID,
		IncludeInactive: true,
	}
	if req.Date != nil {
		filter.Date = ptr.Ptr(calendar.DateOf(*req.Date))
	}

	bookings, err := s.bookingRepo.ListBookings(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	today := calendar.Today(s.timeProvider.Now(), s.location)
	selected := make([]*domain.Booking, 0, len(bookings))

	for _, b := range bookings {
		if matchesView(b, view, today) {
			selected = append(selected, b)
		}
	}

	sortBookings(selected, view == domain.ViewUpcoming)

	s.logger.Info("List: successfully fetched %d bookings for view=%s", len(selected), view)
	return models.FromDomainBookingList(selected), nil
}

// HasDuplicate true, если у участника с таким email уже есть неотменённое бронирование события на дату
func (s *Service) HasDuplicate(ctx context.Context, email, eventConfigID string, date time.Time) (bool, error) {
	duplicate, err := s.bookingRepo.HasDuplicateBooking(ctx, email, eventConfigID, calendar.DateOf(date))
	if err != nil {
		s.logger.Error("HasDuplicate: repository error: %v", err)
		return false, fmt.Errorf("%w: HasDuplicate - repository error: %v", ErrInternal, err)
	}
	return duplicate, nil
}

// Cancel отменяет бронирование и продвигает лист ожидания пары (событие, дата) ровно один раз.
// Повторная отмена уже отменённого бронирования ничего не меняет и лист ожидания не трогает
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	var (
		result   *domain.Booking
		promoted *domain.WaitlistEntry
	)

	err = s.locks.Do(ctx, []string{lockmanager.DayKey(booking.EventConfigID, booking.Date)}, func(lockCtx context.Context) error {
		// Перечитываем под блокировкой: статус мог измениться
		current, err := s.getBooking(lockCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if current.IsCancelled() {
			s.logger.Info("Cancel: booking id=%s is already cancelled", id)
			result = current
			return nil
		}

		if !current.Status.CanTransitionTo(domain.StatusCancelled) {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, current.Status)
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, current.Status)
		}

		now := s.timeProvider.Now()
		current.Status = domain.StatusCancelled
		current.CancelledAt = &now
		if req.Reason != "" {
			current.CancelReason = ptr.Ptr(req.Reason)
		}

		saved, err := s.bookingRepo.UpdateBooking(lockCtx, current)
		if err != nil {
			s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		result = saved

		// Место освободилось - уведомляем следующего в листе ожидания
		entry, err := s.waitlist.NotifyNext(lockCtx, saved.EventConfigID, saved.Date)
		if err != nil {
			// Отмена уже сохранена, ошибка листа ожидания не откатывает её
			s.logger.Error("Cancel: waitlist promotion failed for booking id=%s: %v", id, err)
			return nil
		}
		promoted = entry
		return nil
	})

	s.observe("cancel", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)

	return &models.CancelBookingResponse{
		Booking:  *models.FromDomainBooking(result),
		Promoted: models.FromDomainWaitlistEntry(promoted),
	}, nil
}

// Reschedule переносит бронирование на новую дату и время.
// Бронирование изменяется на месте, новая запись не создаётся.
// Новый слот проверяется так же, как при создании, без учёта самого переносимого бронирования
func (s *Service) Reschedule(ctx context.Context, id string, req *models.RescheduleBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%s to date=%s, time=%s", id, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateReschedule(req); err != nil {
		s.logger.Warn("Reschedule: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.getBooking(ctx, "Reschedule", id)
	if err != nil {
		return nil, err
	}

	cfg, err := s.eventRepo.GetEvent(ctx, booking.EventConfigID)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			s.logger.Warn("Reschedule: event id=%s not found", booking.EventConfigID)
			return nil, ErrEventNotFound
		}
		s.logger.Error("Reschedule: repository error for event id=%s: %v", booking.EventConfigID, err)
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	loc, err := tzconv.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event timezone: %v", ErrInternal, err)
	}

	newDate := calendar.DateOf(req.Date)
	keys := []string{
		lockmanager.DayKey(booking.EventConfigID, booking.Date),
		lockmanager.DayKey(booking.EventConfigID, newDate),
	}

	var result *domain.Booking
	err = s.locks.Do(ctx, keys, func(lockCtx context.Context) error {
		current, err := s.getBooking(lockCtx, "Reschedule", id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(domain.StatusRescheduled) {
			s.logger.Warn("Reschedule: booking id=%s cannot be rescheduled, status=%s", id, current.Status)
			return fmt.Errorf("%w: status=%s", ErrInvalidTransition, current.Status)
		}

		bookings, err := s.bookingRepo.BookingsForDate(lockCtx, current.EventConfigID, newDate)
		if err != nil {
			s.logger.Error("Reschedule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		reason := get_available_slots.CheckSlot(newDate, req.StartTime, cfg, bookings, current.ID, s.timeProvider.Now(), loc)
		if reason != get_available_slots.ReasonAvailable {
			s.logger.Warn("Reschedule: slot %s on %s rejected: %s", req.StartTime, newDate.Format(domain.DateFormat), reason)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, reason)
		}

		current.Date = newDate
		current.StartTime = req.StartTime
		current.EndTime = req.StartTime.AddMinutes(cfg.DurationMinutes)
		current.Status = domain.StatusRescheduled
		if req.Reason != "" {
			current.RescheduleReason = ptr.Ptr(req.Reason)
		}

		saved, err := s.bookingRepo.UpdateBooking(lockCtx, current)
		if err != nil {
			s.logger.Error("Reschedule: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}
		result = saved
		return nil
	})

	s.observe("reschedule", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: successfully rescheduled booking id=%s", id)
	return models.FromDomainBooking(result), nil
}

// MarkNoShow отмечает неявку участника
func (s *Service) MarkNoShow(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.setStatus(ctx, "MarkNoShow", id, domain.StatusNoShow)
}

// UndoNoShow отменяет отметку о неявке и возвращает бронирование в confirmed
func (s *Service) UndoNoShow(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("UndoNoShow: booking id=%s", id)

	booking, err := s.getBooking(ctx, "UndoNoShow", id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.StatusNoShow {
		s.logger.Warn("UndoNoShow: booking id=%s is not marked as no-show, status=%s", id, booking.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrInvalidTransition, booking.Status)
	}

	return s.setStatus(ctx, "UndoNoShow", id, domain.StatusConfirmed)
}

// Complete административно завершает бронирование
func (s *Service) Complete(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.setStatus(ctx, "Complete", id, domain.StatusCompleted)
}

// NoShowRate считает долю неявок среди прошедших бронирований в статусах
// confirmed, completed и no_show: round(100 * noShows / total). 0, если таких бронирований нет
func (s *Service) NoShowRate(ctx context.Context, eventConfigID *string) (*models.NoShowRateResponse, error) {
	s.logger.Info("NoShowRate: event=%s", ptr.Value(eventConfigID))

	bookings, err := s.bookingRepo.ListBookings(ctx, domain.BookingsFilter{
		EventConfigID:   eventConfigID,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("NoShowRate: repository error: %v", err)
		return nil, fmt.Errorf("%w: NoShowRate - repository error: %v", ErrInternal, err)
	}

	today := calendar.Today(s.timeProvider.Now(), s.location)
	noShows, total := CountNoShows(bookings, today)

	return &models.NoShowRateResponse{
		EventConfigID: eventConfigID,
		Rate:          NoShowPercent(noShows, total),
		NoShows:       noShows,
		Total:         total,
	}, nil
}

// CountNoShows считает неявки и знаменатель среди бронирований с датой строго раньше today
func CountNoShows(bookings []*domain.Booking, today time.Time) (noShows, total int) {
	for _, b := range bookings {
		if !b.Date.Before(today) || !b.CountsForNoShowRate() {
			continue
		}
		total++
		if b.Status == domain.StatusNoShow {
			noShows++
		}
	}
	return noShows, total
}

// NoShowPercent round(100 * noShows / total), 0 при пустом знаменателе
func NoShowPercent(noShows, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(noShows) / float64(total)))
}

// Вспомогательные методы

// setStatus переводит бронирование в новый статус с проверкой таблицы переходов
func (s *Service) setStatus(ctx context.Context, op string, id string, next domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("%s: moving booking id=%s to %s", op, id, next)

	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking
	err = s.locks.Do(ctx, []string{lockmanager.DayKey(booking.EventConfigID, booking.Date)}, func(lockCtx context.Context) error {
		current, err := s.getBooking(lockCtx, op, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: booking id=%s cannot move from %s to %s", op, id, current.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		current.Status = next
		saved, err := s.bookingRepo.UpdateBooking(lockCtx, current)
		if err != nil {
			s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		result = saved
		return nil
	})

	s.observe(string(next), err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%s is now %s", op, id, next)
	return models.FromDomainBooking(result), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) observe(op string, err error) {
	if s.metrics != nil {
		s.metrics.BookingOperation(op, err)
	}
}

func matchesView(b *domain.Booking, view domain.BookingView, today time.Time) bool {
	switch view {
	case domain.ViewUpcoming:
		return !b.IsCancelled() && !b.Date.Before(today)
	case domain.ViewPast:
		return !b.IsCancelled() && b.Date.Before(today)
	case domain.ViewCancelled:
		return b.IsCancelled()
	case domain.ViewAll:
		return true
	default:
		return false
	}
}

// sortBookings сортирует по дате и времени начала
func sortBookings(bookings []*domain.Booking, ascending bool) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			if ascending {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if ascending {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.StartTime.IsAfter(b.StartTime)
	})
}

func validateReschedule(req *models.RescheduleBookingRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
