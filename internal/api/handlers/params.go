package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

// QueryString возвращает указатель на значение query параметра или nil, если он пуст
func QueryString(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// QueryDate разбирает необязательный query параметр в формате YYYY-MM-DD
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	date, err := calendar.ParseISODate(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return &date, nil
}

// ParseMonth разбирает месяц в формате YYYY-MM
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
