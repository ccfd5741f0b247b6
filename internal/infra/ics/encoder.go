// Package ics renders a booking as an RFC 5545 VCALENDAR document.
//
// The output is byte-exact: CRLF line endings, content lines folded at 75
// octets with a single-space continuation, and a trailing CRLF.
package ics

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/calendar"
)

const (
	crlf         = "\r\n"
	maxLineBytes = 75

	stampFormat = "20060102T150405Z"
	localFormat = "20060102T150405"
)

// Encoder генерирует ICS-документы для бронирований
type Encoder struct {
	Product string // подставляется в PRODID: -//<Product>//Scheduling//EN
	Domain  string // правая часть UID: <bookingId>@<Domain>
	Clock   func() time.Time
}

// NewEncoder создает энкодер с системными часами
func NewEncoder(product, domainName string) *Encoder {
	return &Encoder{
		Product: product,
		Domain:  domainName,
		Clock:   time.Now,
	}
}

// Generate возвращает ICS-документ для бронирования
func (e *Encoder) Generate(b *domain.Booking, cfg *domain.EventConfig) string {
	now := time.Now
	if e.Clock != nil {
		now = e.Clock
	}

	start, end := localBounds(b)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + e.Product + "//Scheduling//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + b.ID + "@" + e.Domain,
		"DTSTAMP:" + now().UTC().Format(stampFormat),
		"DTSTART;TZID=" + b.Timezone + ":" + start.Format(localFormat),
		"DTEND;TZID=" + b.Timezone + ":" + end.Format(localFormat),
		"SUMMARY:" + EscapeText(cfg.Name),
		"DESCRIPTION:" + EscapeText(Description(b, cfg)),
		"LOCATION:" + EscapeText(cfg.Location.Label()),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(FoldLine(line))
		sb.WriteString(crlf)
	}
	return sb.String()
}

// Description собирает описание: описание события, заметки, длительность и участники
func Description(b *domain.Booking, cfg *domain.EventConfig) string {
	parts := make([]string, 0, 4)

	if cfg.Description != "" {
		parts = append(parts, cfg.Description)
	}
	if b.Notes != "" {
		parts = append(parts, "Notes: "+b.Notes)
	}

	parts = append(parts, fmt.Sprintf("Duration: %d minutes", durationMinutes(b, cfg)))

	if len(b.Attendees) > 0 {
		names := make([]string, len(b.Attendees))
		for i, a := range b.Attendees {
			names[i] = fmt.Sprintf("%s <%s>", a.Name, a.Email)
		}
		parts = append(parts, "Attendees: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, "\n")
}

// EscapeText экранирует TEXT-значение: \ ; , и перевод строки
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	).Replace(s)
}

// FoldLine разбивает строку на части не длиннее 75 октетов.
// Продолжения начинаются с одного пробела, который входит в лимит.
// Многобайтовые символы UTF-8 не разрываются
func FoldLine(line string) string {
	if len(line) <= maxLineBytes {
		return line
	}

	var sb strings.Builder
	limit := maxLineBytes
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString(crlf)
		sb.WriteByte(' ')
		line = line[cut:]
		limit = maxLineBytes - 1
	}
	sb.WriteString(line)
	return sb.String()
}

// localBounds возвращает начало и конец бронирования как настенное время без зоны.
// Конец, не превышающий начало, относится к следующему дню
func localBounds(b *domain.Booking) (time.Time, time.Time) {
	day := calendar.DateOf(b.Date)
	startMin := b.StartTime.Minutes()
	endMin := b.EndTime.Minutes()

	start := day.Add(time.Duration(startMin) * time.Minute)
	endDay := day
	if endMin <= startMin {
		endDay = calendar.AddDays(day, 1)
	}
	end := endDay.Add(time.Duration(endMin) * time.Minute)
	return start, end
}

func durationMinutes(b *domain.Booking, cfg *domain.EventConfig) int {
	start, end := localBounds(b)
	if d := int(end.Sub(start) / time.Minute); d > 0 {
		return d
	}
	return cfg.DurationMinutes
}
