package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	errs  []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, fmt.Sprintf(format, v...))
}

type observation struct {
	method, route string
	status        int
}

type fakeMetrics struct {
	observed []observation
}

func (m *fakeMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func newRouter(log Logger, metrics HTTPMetrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log))
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}).Methods(http.MethodGet)
	return r
}

func TestMiddleware_LogsAndObservesRouteTemplate(t *testing.T) {
	log := &recordingLogger{}
	metrics := &fakeMetrics{}
	router := newRouter(log, metrics)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/b-42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	require.Len(t, metrics.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusTeapot}, metrics.observed[0])

	require.Len(t, log.infos, 1)
	assert.True(t, strings.HasPrefix(log.infos[0], "GET /bookings/b-42 - status=418"))
	assert.Empty(t, log.errs)
}

func TestLoggingMiddleware_RecoversPanic(t *testing.T) {
	log := &recordingLogger{}
	router := newRouter(log, &fakeMetrics{})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":500`)
	require.Len(t, log.errs, 1)
	assert.Contains(t, log.errs[0], "panic: boom")
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "status=500")
}
