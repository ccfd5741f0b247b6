// Package calendarsync manages links to external calendars. Imported events are
// only counted; they never take part in slot conflict detection.
package calendarsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ical "github.com/arran4/golang-ical"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
)

var validate = validator.New()

// Service сервис подключений внешних календарей
type Service struct {
	repo         ConnectionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo ConnectionRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Connect создаёт подключение в статусе connected
func (s *Service) Connect(ctx context.Context, req *models.ConnectRequest) (*models.ConnectionResponse, error) {
	s.logger.Info("Connect: provider=%s, direction=%s", req.Provider, req.SyncDirection)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Connect: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	provider, _ := domain.ParseCalendarProvider(req.Provider)
	direction := domain.SyncOneWay
	if req.SyncDirection != "" {
		direction, _ = domain.ParseSyncDirection(req.SyncDirection)
	}

	created, err := s.repo.CreateConnection(ctx, &domain.CalendarConnection{
		Provider:       provider,
		SyncDirection:  direction,
		CheckConflicts: req.CheckConflicts,
		Connected:      true,
	})
	if err != nil {
		s.logger.Error("Connect: repository error: %v", err)
		return nil, fmt.Errorf("%w: Connect - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Connect: successfully created connection id=%s", created.ID)
	return models.FromDomainConnection(created), nil
}

// List возвращает все подключения
func (s *Service) List(ctx context.Context) (*models.ConnectionListResponse, error) {
	conns, err := s.repo.ListConnections(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d connections", len(conns))
	return models.FromDomainConnectionList(conns), nil
}

// Disconnect помечает подключение как отключённое
func (s *Service) Disconnect(ctx context.Context, id string) (*models.ConnectionResponse, error) {
	s.logger.Info("Disconnect: connection id=%s", id)

	conn, err := s.get(ctx, "Disconnect", id)
	if err != nil {
		return nil, err
	}

	conn.Connected = false
	return s.save(ctx, "Disconnect", conn)
}

// UpdateSettings изменяет настройки синхронизации
func (s *Service) UpdateSettings(ctx context.Context, id string, req *models.UpdateSettingsRequest) (*models.ConnectionResponse, error) {
	s.logger.Info("UpdateSettings: connection id=%s", id)

	if err := validate.Struct(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	conn, err := s.get(ctx, "UpdateSettings", id)
	if err != nil {
		return nil, err
	}

	if req.SyncDirection != nil {
		conn.SyncDirection, _ = domain.ParseSyncDirection(*req.SyncDirection)
	}
	if req.CheckConflicts != nil {
		conn.CheckConflicts = *req.CheckConflicts
	}

	return s.save(ctx, "UpdateSettings", conn)
}

// Sync выполняет синхронизацию. Для отключённого подключения ничего не меняет.
// Если передан ICS-фид, он разбирается и запоминается количество событий
func (s *Service) Sync(ctx context.Context, id string, feed []byte) (*models.SyncResponse, error) {
	s.logger.Info("Sync: connection id=%s, feed=%d bytes", id, len(feed))

	conn, err := s.get(ctx, "Sync", id)
	if err != nil {
		return nil, err
	}

	if !conn.Connected {
		s.logger.Info("Sync: connection id=%s is disconnected, skipping", id)
		return &models.SyncResponse{
			Connection: *models.FromDomainConnection(conn),
			Synced:     false,
		}, nil
	}

	if len(feed) > 0 {
		count, err := CountFeedEvents(feed)
		if err != nil {
			s.logger.Warn("Sync: failed to parse feed for connection id=%s: %v", id, err)
			return nil, err
		}
		conn.ImportedEvents = count
	}

	now := s.timeProvider.Now()
	conn.LastSyncedAt = &now

	saved, err := s.save(ctx, "Sync", conn)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sync: connection id=%s synced, %d events", id, saved.ImportedEvents)
	return &models.SyncResponse{Connection: *saved, Synced: true}, nil
}

// CountFeedEvents разбирает ICS-фид и возвращает количество VEVENT
func CountFeedEvents(feed []byte) (int, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(feed))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	return len(cal.Events()), nil
}

func (s *Service) get(ctx context.Context, op string, id string) (*domain.CalendarConnection, error) {
	conn, err := s.repo.GetConnection(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrConnectionNotFound) {
			s.logger.Warn("%s: connection id=%s not found", op, id)
			return nil, ErrConnectionNotFound
		}
		s.logger.Error("%s: repository error for connection id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return conn, nil
}

func (s *Service) save(ctx context.Context, op string, conn *domain.CalendarConnection) (*models.ConnectionResponse, error) {
	saved, err := s.repo.UpdateConnection(ctx, conn)
	if err != nil {
		if errors.Is(err, memory.ErrConnectionNotFound) {
			return nil, ErrConnectionNotFound
		}
		s.logger.Error("%s: repository error for connection id=%s: %v", op, conn.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainConnection(saved), nil
}
