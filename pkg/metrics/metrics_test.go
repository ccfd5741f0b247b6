package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Exported(t *testing.T) {
	m := New("test-service")

	m.ObserveHTTP(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 10*time.Millisecond)
	m.BookingOperation("create", nil)
	m.BookingOperation("create", errors.New("conflict"))
	m.BookingOperation("create", nil)
	m.WaitlistPromotion(true)
	m.WaitlistPromotion(false)
	m.SlotsReturned(16)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="POST",route="/api/v1/bookings",service="test-service",status="201"} 1`)
	assert.Contains(t, body, `booking_operations_total{operation="create",result="ok",service="test-service"} 2`)
	assert.Contains(t, body, `booking_operations_total{operation="create",result="error",service="test-service"} 1`)
	assert.Contains(t, body, `waitlist_promotions_total{result="notified",service="test-service"} 1`)
	assert.Contains(t, body, `waitlist_promotions_total{result="empty",service="test-service"} 1`)
	assert.Contains(t, body, `available_slots_generated_sum{service="test-service"} 16`)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a := New("a")
	b := New("b")
	a.BookingOperation("cancel", nil)

	assert.NotContains(t, scrape(t, b), `operation="cancel"`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingOperation("create", nil)
		m.WaitlistPromotion(true)
		m.SlotsReturned(3)
	})
}
