package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	eventRepo    EventRepository
	bookingRepo  BookingRepository
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	bookingRepo BookingRepository,
	metrics MetricsCollector,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		eventRepo:    eventRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: event=%s, date=%s, timezone=%s",
		req.EventConfigID, req.Date.Format(domain.DateFormat), req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию и часовой пояс события
	cfg, loc, err := uc.loadEvent(ctx, req.EventConfigID)
	if err != nil {
		return nil, err
	}

	displayTZ := req.Timezone
	if displayTZ == "" {
		displayTZ = cfg.Timezone
	}
	displayLoc, err := tzconv.LoadLocation(displayTZ)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid display timezone %q: %v", displayTZ, err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, displayTZ)
	}

	// 3. Получаем бронирования на дату
	date := calendar.DateOf(req.Date)
	bookings, err := uc.bookingRepo.BookingsForDate(ctx, cfg.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	ranges, reason := GenerateSlots(date, cfg, bookings, uc.timeProvider.Now(), loc)

	// 5. Переводим в часовой пояс отображения
	slots := make([]Slot, len(ranges))
	for i, r := range ranges {
		start := tzconv.Convert(r.Start, loc, displayLoc, date)
		end := tzconv.Convert(r.End, loc, displayLoc, date)
		slots[i] = Slot{
			Start:            r.Start,
			End:              r.End,
			DisplayStart:     start.Time,
			DisplayEnd:       end.Time,
			DisplayDate:      start.Date,
			DisplayDayOffset: start.DayOffset,
		}
	}

	if uc.metrics != nil {
		uc.metrics.SlotsReturned(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for event=%s, date=%s, reason=%s",
		len(slots), cfg.ID, date.Format(domain.DateFormat), reason)

	return &Response{
		Date:            date,
		EventConfigID:   cfg.ID,
		Timezone:        cfg.Timezone,
		DisplayTimezone: displayTZ,
		Reason:          reason,
		Slots:           slots,
	}, nil
}

// MonthAvailability возвращает доступность каждой даты месяца (по сетке календаря)
func (uc *UseCase) MonthAvailability(ctx context.Context, req *MonthRequest) (*MonthResponse, error) {
	uc.logger.Info("MonthAvailability: event=%s, month=%04d-%02d", req.EventConfigID, req.Year, int(req.Month))

	if err := validateMonthRequest(req); err != nil {
		uc.logger.Warn("MonthAvailability: validation failed: %v", err)
		return nil, err
	}

	cfg, loc, err := uc.loadEvent(ctx, req.EventConfigID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.BookingsForEvent(ctx, cfg.ID)
	if err != nil {
		uc.logger.Error("MonthAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	grid := calendar.CalendarGrid(req.Year, req.Month)
	monthStart := time.Date(req.Year, req.Month, 1, 0, 0, 0, 0, time.UTC)

	dates := make([]DateAvailability, 0, calendar.DaysInMonth(req.Year, req.Month))
	for _, week := range grid {
		for _, day := range week {
			// Дни соседних месяцев в сетке пропускаем
			if !calendar.IsSameMonth(day, monthStart) {
				continue
			}
			dates = append(dates, DateAvailability{
				Date:      day,
				Available: IsDateAvailable(day, cfg, bookings, now, loc),
			})
		}
	}

	return &MonthResponse{
		EventConfigID: cfg.ID,
		Year:          req.Year,
		Month:         req.Month,
		Dates:         dates,
	}, nil
}

// NextAvailable ищет ближайшую доступную дату начиная с from
func (uc *UseCase) NextAvailable(ctx context.Context, eventConfigID string, from time.Time) (*NextAvailableResponse, error) {
	uc.logger.Info("NextAvailable: event=%s, from=%s", eventConfigID, from.Format(domain.DateFormat))

	if eventConfigID == "" {
		return nil, fmt.Errorf("%w: eventConfigID is required", ErrInvalidInput)
	}

	cfg, loc, err := uc.loadEvent(ctx, eventConfigID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.BookingsForEvent(ctx, cfg.ID)
	if err != nil {
		uc.logger.Error("NextAvailable: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if from.IsZero() {
		from = calendar.Today(now, loc)
	}

	date, found := NextAvailableDate(from, cfg, bookings, now, loc)

	return &NextAvailableResponse{
		EventConfigID: cfg.ID,
		From:          calendar.DateOf(from),
		Date:          date,
		Found:         found,
	}, nil
}

// loadEvent получает конфигурацию события и загружает его часовой пояс
func (uc *UseCase) loadEvent(ctx context.Context, id string) (*domain.EventConfig, *time.Location, error) {
	cfg, err := uc.eventRepo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrEventNotFound) {
			uc.logger.Warn("GetAvailableSlots: event id=%s not found", id)
			return nil, nil, ErrEventNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get event id=%s: %v", id, err)
		return nil, nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	loc, err := tzconv.LoadLocation(cfg.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: event id=%s has invalid timezone %q: %v", id, cfg.Timezone, err)
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, cfg.Timezone)
	}

	return cfg, loc, nil
}
