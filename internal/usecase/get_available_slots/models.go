package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	EventConfigID string    // ID конфигурации события
	Date          time.Time // Дата (без времени) в часовом поясе события
	Timezone      string    // Часовой пояс приглашённого для отображения (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	EventConfigID   string
	Timezone        string // Часовой пояс события
	DisplayTimezone string // Часовой пояс отображения
	Reason          Reason // Причина пустого ответа (или available)
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	Start types.TimeString // Начало в часовом поясе события
	End   types.TimeString // Конец в часовом поясе события

	// Время в часовом поясе отображения. DisplayDate и DayOffset показывают переход через полночь
	DisplayStart     types.TimeString
	DisplayEnd       types.TimeString
	DisplayDate      time.Time
	DisplayDayOffset int
}

// MonthRequest запрос доступности дат месяца
type MonthRequest struct {
	EventConfigID string
	Year          int
	Month         time.Month
}

// DateAvailability доступность одной даты месяца
type DateAvailability struct {
	Date      time.Time
	Available bool
}

// MonthResponse ответ с доступностью дат месяца
type MonthResponse struct {
	EventConfigID string
	Year          int
	Month         time.Month
	Dates         []DateAvailability
}

// NextAvailableResponse ответ на поиск ближайшей доступной даты
type NextAvailableResponse struct {
	EventConfigID string
	From          time.Time
	Date          time.Time
	Found         bool
}
