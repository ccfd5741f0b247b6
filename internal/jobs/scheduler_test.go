package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(format string, v ...interface{}) {}
func (l *recordingLogger) Info(format string, v ...interface{})  {}
func (l *recordingLogger) Warn(format string, v ...interface{})  {}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

type fakeExpirer struct {
	mu    sync.Mutex
	calls int
	ttl   time.Duration
	err   error
}

func (e *fakeExpirer) ExpireNotified(ctx context.Context, ttl time.Duration) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.ttl = ttl
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context without deadline")
	}
	return 1, e.err
}

func (e *fakeExpirer) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type staticSource struct {
	state memory.State
}

func (s staticSource) Snapshot() memory.State {
	return s.state
}

type fakeSaver struct {
	saved []memory.State
	err   error
}

func (s *fakeSaver) Save(ctx context.Context, st memory.State) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, st)
	return nil
}

func TestWaitlistExpiryJob(t *testing.T) {
	log := &recordingLogger{}
	expirer := &fakeExpirer{}

	WaitlistExpiryJob(expirer, time.Hour, log)()
	assert.Equal(t, 1, expirer.callCount())
	assert.Equal(t, time.Hour, expirer.ttl)
	assert.Zero(t, log.errorCount())

	expirer.err = errors.New("boom")
	WaitlistExpiryJob(expirer, time.Hour, log)()
	assert.Equal(t, 1, log.errorCount())
}

func TestSnapshotJob(t *testing.T) {
	log := &recordingLogger{}
	src := staticSource{state: memory.State{
		Bookings: []*domain.Booking{{ID: "b-1"}},
	}}
	saver := &fakeSaver{}

	SnapshotJob(src, saver, log)()
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "b-1", saver.saved[0].Bookings[0].ID)
	assert.Zero(t, log.errorCount())

	saver.err = errors.New("db down")
	SnapshotJob(src, saver, log)()
	assert.Len(t, saver.saved, 1)
	assert.Equal(t, 1, log.errorCount())
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(&recordingLogger{})

	assert.Error(t, s.AddWaitlistExpiry("every five minutes", &fakeExpirer{}, time.Hour))
	assert.Error(t, s.AddSnapshot("61 * * * *", staticSource{}, &fakeSaver{}))
	assert.NoError(t, s.AddSnapshot("@hourly", staticSource{}, &fakeSaver{}))
}

func TestScheduler_RunsAndStops(t *testing.T) {
	s := NewScheduler(&recordingLogger{})
	expirer := &fakeExpirer{}

	require.NoError(t, s.AddWaitlistExpiry("@every 1s", expirer, time.Minute))
	s.Start()

	assert.Eventually(t, func() bool { return expirer.callCount() > 0 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
