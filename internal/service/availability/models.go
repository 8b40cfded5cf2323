package availability

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// Options параметры расчёта доступности одного дня
type Options struct {
	// TreatmentDuration длительность процедуры в минутах (> 0)
	TreatmentDuration int
	// BufferMinutes пауза между приёмами; -1 означает "значение по умолчанию"
	BufferMinutes int
}

// DayAvailability результат расчёта доступности одного дня
type DayAvailability struct {
	Date   string // YYYY-MM-DD
	Status domain.DayStatus
	Slots  []domain.TimeSlot
}

// HasAvailability возвращает true, если в дне есть хотя бы один свободный слот
func (d *DayAvailability) HasAvailability() bool {
	for _, slot := range d.Slots {
		if slot.Available {
			return true
		}
	}
	return false
}

// EventDebug событие в диагностическом выводе
type EventDebug struct {
	Summary string `json:"summary"`
	Start   string `json:"start"`
	End     string `json:"end"`
	AllDay  bool   `json:"allDay,omitempty"`
}

// SlotDebug слот с полной детализацией проверки конфликтов
type SlotDebug struct {
	Time             string      `json:"time"`
	Available        bool        `json:"available"`
	IsBlocked        bool        `json:"isBlocked"`
	ConflictingEvent *EventDebug `json:"conflictingEvent,omitempty"`
}

// DayDebug полная диагностика расчёта одного дня: правило, маркеры,
// эффективное окно, блокирующие события и послотовая детализация.
// Используется только внепродакшеновым инструментарием
type DayDebug struct {
	Date            string             `json:"date"`
	DayOfWeek       string             `json:"dayOfWeek"`
	Status          domain.DayStatus   `json:"status"`
	Message         string             `json:"message,omitempty"`
	WorkingHours    *domain.TimeWindow `json:"workingHours"`
	MarkerEvents    []EventDebug       `json:"markerEvents"`
	EffectiveWindow *domain.TimeWindow `json:"effectiveWindow"`
	Events          []EventDebug       `json:"events"`
	BlockingEvents  []EventDebug       `json:"blockingEvents"`
	Slots           []SlotDebug        `json:"slots"`
}

// eventDebug конвертирует событие календаря в диагностическое представление
func eventDebug(event *domain.CalendarEvent, loc *time.Location) EventDebug {
	ed := EventDebug{Summary: event.Summary, AllDay: event.AllDay}
	if event.AllDay {
		ed.Start = event.Start.In(loc).Format(domain.DateFormat)
		ed.End = event.End.In(loc).Format(domain.DateFormat)
		return ed
	}
	ed.Start = event.Start.In(loc).Format(time.RFC3339)
	ed.End = event.End.In(loc).Format(time.RFC3339)
	return ed
}
