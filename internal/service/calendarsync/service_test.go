package calendarsync

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var syncTime = time.Date(2025, time.October, 14, 8, 0, 0, 0, time.UTC)

func feed(events ...string) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Test//Feed//EN",
	}
	for _, uid := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+uid,
			"DTSTAMP:20251001T120000Z",
			"DTSTART:20251015T100000Z",
			"DTEND:20251015T103000Z",
			"SUMMARY:Busy",
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func newService() *Service {
	return NewService(memory.NewStore(), fixedClock{now: syncTime}, logger.NewNop())
}

func connect(t *testing.T, svc *Service) *models.ConnectionResponse {
	t.Helper()
	conn, err := svc.Connect(context.Background(), &models.ConnectRequest{Provider: "google"})
	require.NoError(t, err)
	return conn
}

func TestConnect_Defaults(t *testing.T) {
	svc := newService()

	conn := connect(t, svc)
	assert.NotEmpty(t, conn.ID)
	assert.Equal(t, "google", conn.Provider)
	assert.Equal(t, "one_way", conn.SyncDirection)
	assert.True(t, conn.Connected)
	assert.False(t, conn.CheckConflicts)
	assert.Nil(t, conn.LastSyncedAt)
}

func TestConnect_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.ConnectRequest
	}{
		{name: "missing provider", req: models.ConnectRequest{}},
		{name: "unknown provider", req: models.ConnectRequest{Provider: "icloud"}},
		{name: "unknown direction", req: models.ConnectRequest{Provider: "caldav", SyncDirection: "both"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Connect(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateSettings(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	conn := connect(t, svc)

	direction := "two_way"
	check := true
	updated, err := svc.UpdateSettings(ctx, conn.ID, &models.UpdateSettingsRequest{
		SyncDirection:  &direction,
		CheckConflicts: &check,
	})
	require.NoError(t, err)
	assert.Equal(t, "two_way", updated.SyncDirection)
	assert.True(t, updated.CheckConflicts)

	bad := "sideways"
	_, err = svc.UpdateSettings(ctx, conn.ID, &models.UpdateSettingsRequest{SyncDirection: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateSettings(ctx, "missing", &models.UpdateSettingsRequest{CheckConflicts: &check})
	assert.ErrorIs(t, err, ErrConnectionNotFound)
}

func TestSync_CountsFeedEvents(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	conn := connect(t, svc)

	resp, err := svc.Sync(ctx, conn.ID, feed("a@test", "b@test"))
	require.NoError(t, err)
	assert.True(t, resp.Synced)
	assert.Equal(t, 2, resp.Connection.ImportedEvents)
	require.NotNil(t, resp.Connection.LastSyncedAt)
	assert.Equal(t, "2025-10-14T08:00:00Z", *resp.Connection.LastSyncedAt)

	// без фида счётчик не сбрасывается
	resp, err = svc.Sync(ctx, conn.ID, nil)
	require.NoError(t, err)
	assert.True(t, resp.Synced)
	assert.Equal(t, 2, resp.Connection.ImportedEvents)
}

func TestSync_InvalidFeed(t *testing.T) {
	svc := newService()
	conn := connect(t, svc)

	_, err := svc.Sync(context.Background(), conn.ID, []byte("definitely not a calendar"))
	assert.ErrorIs(t, err, ErrInvalidFeed)
}

func TestSync_DisconnectedIsNoOp(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	conn := connect(t, svc)

	disconnected, err := svc.Disconnect(ctx, conn.ID)
	require.NoError(t, err)
	assert.False(t, disconnected.Connected)

	resp, err := svc.Sync(ctx, conn.ID, feed("a@test"))
	require.NoError(t, err)
	assert.False(t, resp.Synced)
	assert.Zero(t, resp.Connection.ImportedEvents)
	assert.Nil(t, resp.Connection.LastSyncedAt)
}

func TestNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Disconnect(ctx, "missing")
	assert.ErrorIs(t, err, ErrConnectionNotFound)

	_, err = svc.Sync(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrConnectionNotFound)
}

func TestList(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Connections)

	first := connect(t, svc)
	second := connect(t, svc)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Connections, 2)
	assert.Equal(t, first.ID, list.Connections[0].ID)
	assert.Equal(t, second.ID, list.Connections[1].ID)
}

func TestCountFeedEvents(t *testing.T) {
	n, err := CountFeedEvents(feed())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = CountFeedEvents(feed("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
