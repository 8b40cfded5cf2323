package availability

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// Чистые функции согласования слотов и событий. Никакого I/O -
// используются и дневным, и месячным путем расчёта

// partitionEvents разделяет события дня на маркеры продления часов
// и потенциально блокирующие события
func partitionEvents(events []domain.CalendarEvent, classifier EventClassifier) (markers, blocking []domain.CalendarEvent) {
	for i := range events {
		if classifier.IsMarker(&events[i]) {
			markers = append(markers, events[i])
		} else {
			blocking = append(blocking, events[i])
		}
	}
	return markers, blocking
}

// effectiveWindow вычисляет эффективное окно бронирования дня.
//
// Правило недели расширяется маркерами этой даты (min начала / max конца);
// без правила окно определяется исключительно конвертом маркеров.
// Возвращает ok=false, когда день ничем не определен (закрыт).
// Маркеры других дат и события на весь день игнорируются
func effectiveWindow(rule *domain.WorkingHoursRule, markers []domain.CalendarEvent, date time.Time, loc *time.Location) (domain.TimeWindow, bool) {
	var startMinutes, endMinutes int
	found := false

	if rule != nil {
		startMinutes = rule.StartTime.Minutes()
		endMinutes = rule.EndTime.Minutes()
		found = true
	}

	for i := range markers {
		marker := &markers[i]
		if !marker.IsTimed() || !marker.OnDate(date, loc) {
			continue
		}

		localStart := marker.Start.In(loc)
		localEnd := marker.End.In(loc)
		markerStart := localStart.Hour()*60 + localStart.Minute()
		markerEnd := localEnd.Hour()*60 + localEnd.Minute()

		if !found {
			startMinutes, endMinutes = markerStart, markerEnd
			found = true
			continue
		}

		if markerStart < startMinutes {
			startMinutes = markerStart
		}
		if markerEnd > endMinutes {
			endMinutes = markerEnd
		}
	}

	if !found {
		return domain.TimeWindow{}, false
	}

	return domain.TimeWindow{
		Start: types.NewTimeStringFromMinutes(startMinutes),
		End:   types.NewTimeStringFromMinutes(endMinutes),
	}, true
}

// generateSlotTimes генерирует стартовые времена слотов с фиксированным шагом.
// Генерируются только слоты, целиком помещающиеся в окно: последний старт t
// удовлетворяет t + duration <= window.End
func generateSlotTimes(window domain.TimeWindow, durationMinutes, intervalMinutes int) []types.TimeString {
	var slots []types.TimeString

	endMinutes := window.End.Minutes()
	for m := window.Start.Minutes(); m+durationMinutes <= endMinutes; m += intervalMinutes {
		slots = append(slots, types.NewTimeStringFromMinutes(m))
	}

	return slots
}

// findConflict возвращает первое блокирующее событие, конфликтующее со слотом,
// или nil, если слот свободен.
//
// Для личных событий сравнивается небуферизованный интервал слота -
// личное время не требует паузы между приёмами. Для остальных событий буфер
// применяется симметрично: к концу слота (кроме последнего слота дня) и к
// концу события, чтобы два приёма не оказались ближе bufferMinutes друг к другу.
// События на весь день никогда не блокируют слоты
func findConflict(
	slotStart time.Time,
	durationMinutes int,
	bufferMinutes int,
	isLastSlot bool,
	blocking []domain.CalendarEvent,
	classifier EventClassifier,
) *domain.CalendarEvent {
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

	slotEndWithBuffer := slotEnd
	if !isLastSlot {
		slotEndWithBuffer = slotEnd.Add(time.Duration(bufferMinutes) * time.Minute)
	}

	for i := range blocking {
		event := &blocking[i]
		if !event.IsTimed() {
			continue
		}

		if classifier.IsPersonal(event) {
			if overlaps(slotStart, slotEnd, event.Start, event.End) {
				return event
			}
			continue
		}

		eventEndWithBuffer := event.End.Add(time.Duration(bufferMinutes) * time.Minute)
		if overlaps(slotStart, slotEndWithBuffer, event.Start, eventEndWithBuffer) {
			return event
		}
	}

	return nil
}

// overlaps проверяет строгое пересечение интервалов [aStart, aEnd) и [bStart, bEnd).
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// filterDayEvents оставляет только события с временем начала на указанную дату.
// Один и тот же фильтр используется дневным и месячным путем, чтобы
// согласованность их результатов была гарантирована конструктивно
func filterDayEvents(events []domain.CalendarEvent, date time.Time, loc *time.Location) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for i := range events {
		if events[i].OnDate(date, loc) {
			out = append(out, events[i])
		}
	}
	return out
}
