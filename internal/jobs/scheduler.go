// Package jobs runs periodic maintenance of the scheduling state on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout ограничивает время выполнения одного запуска задачи
const jobTimeout = 30 * time.Second

// Scheduler планировщик фоновых задач
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик. Пересекающиеся запуски одной задачи пропускаются
func NewScheduler(logger Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// AddWaitlistExpiry регистрирует задачу истечения notified записей листа ожидания
func (s *Scheduler) AddWaitlistExpiry(spec string, expirer WaitlistExpirer, ttl time.Duration) error {
	if _, err := s.cron.AddFunc(spec, WaitlistExpiryJob(expirer, ttl, s.logger)); err != nil {
		return fmt.Errorf("failed to schedule waitlist expiry %q: %w", spec, err)
	}
	s.logger.Info("Scheduler: waitlist expiry scheduled, spec=%q, ttl=%s", spec, ttl)
	return nil
}

// AddSnapshot регистрирует задачу сохранения снимка состояния
func (s *Scheduler) AddSnapshot(spec string, src SnapshotSource, saver SnapshotSaver) error {
	if _, err := s.cron.AddFunc(spec, SnapshotJob(src, saver, s.logger)); err != nil {
		return fmt.Errorf("failed to schedule snapshot %q: %w", spec, err)
	}
	s.logger.Info("Scheduler: snapshot scheduled, spec=%q", spec)
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения выполняющихся задач
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitlistExpiryJob возвращает функцию задачи истечения записей листа ожидания
func WaitlistExpiryJob(expirer WaitlistExpirer, ttl time.Duration, logger Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := expirer.ExpireNotified(ctx, ttl)
		if err != nil {
			logger.Error("WaitlistExpiryJob: failed to expire entries: %v", err)
			return
		}
		if n > 0 {
			logger.Info("WaitlistExpiryJob: expired %d entries", n)
		}
	}
}

// SnapshotJob возвращает функцию задачи сохранения снимка
func SnapshotJob(src SnapshotSource, saver SnapshotSaver, logger Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		st := src.Snapshot()
		if err := saver.Save(ctx, st); err != nil {
			logger.Error("SnapshotJob: failed to save snapshot: %v", err)
			return
		}
		logger.Info("SnapshotJob: saved %d events, %d bookings, %d waitlist entries, %d connections",
			len(st.Events), len(st.Bookings), len(st.Waitlist), len(st.Connections))
	}
}

// cronLogger адаптирует Logger к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
