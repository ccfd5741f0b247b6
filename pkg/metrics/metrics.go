package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingOperations   *prometheus.CounterVec
	WaitlistPromotions  *prometheus.CounterVec
	SlotsGenerated      prometheus.Histogram
}

// New создает и регистрирует метрики в собственном реестре
// Собственный реестр позволяет создавать несколько экземпляров (например, в тестах)
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_operations_total",
			Help:        "Booking lifecycle operations by result",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		WaitlistPromotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "waitlist_promotions_total",
			Help:        "Waitlist promotion attempts after cancellation",
			ConstLabels: labels,
		}, []string{"result"}),
		SlotsGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "available_slots_generated",
			Help:        "Number of slots returned per availability query",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingOperations,
		m.WaitlistPromotions,
		m.SlotsGenerated,
	)

	return m
}

// Handler HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// BookingOperation фиксирует операцию над бронированием. Безопасно для nil
func (m *Metrics) BookingOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.BookingOperations.WithLabelValues(operation, result).Inc()
}

// WaitlistPromotion фиксирует попытку продвижения листа ожидания. Безопасно для nil
func (m *Metrics) WaitlistPromotion(promoted bool) {
	if m == nil {
		return
	}
	result := "empty"
	if promoted {
		result = "notified"
	}
	m.WaitlistPromotions.WithLabelValues(result).Inc()
}

// SlotsReturned фиксирует количество выданных слотов. Безопасно для nil
func (m *Metrics) SlotsReturned(n int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.Observe(float64(n))
}
