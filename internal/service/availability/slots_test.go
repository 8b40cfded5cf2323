package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(domain.PracticeTimezone)
	require.NoError(t, err)
	return loc
}

// mkEvent собирает событие на дату date (YYYY-MM-DD) со временем HH:MM - HH:MM
func mkEvent(t *testing.T, summary, date, start, end string, loc *time.Location) domain.CalendarEvent {
	t.Helper()
	startAt, err := time.ParseInLocation("2006-01-02 15:04", date+" "+start, loc)
	require.NoError(t, err)
	endAt, err := time.ParseInLocation("2006-01-02 15:04", date+" "+end, loc)
	require.NoError(t, err)
	return domain.CalendarEvent{ID: summary, Summary: summary, Start: startAt, End: endAt}
}

func mkAllDayEvent(t *testing.T, summary, date string, loc *time.Location) domain.CalendarEvent {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	require.NoError(t, err)
	return domain.CalendarEvent{ID: summary, Summary: summary, Start: day, End: day.AddDate(0, 0, 1), AllDay: true}
}

func mkRule(dayOfWeek int, start, end string) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		DayOfWeek: dayOfWeek,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsActive:  true,
	}
}

func testDate(t *testing.T, date string, loc *time.Location) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	require.NoError(t, err)
	return d
}

func TestPartitionEvents(t *testing.T) {
	loc := testLocation(t)
	events := []domain.CalendarEvent{
		mkEvent(t, "VRIJ", "2026-09-07", "18:00", "20:00", loc),
		mkEvent(t, "Afspraak - Jan", "2026-09-07", "13:00", "13:30", loc),
		mkEvent(t, "vrij: extra avond", "2026-09-07", "19:00", "21:00", loc),
	}

	markers, blocking := partitionEvents(events, NewDefaultClassifier())

	require.Len(t, markers, 2)
	require.Len(t, blocking, 1)
	assert.Equal(t, "Afspraak - Jan", blocking[0].Summary)
}

func TestEffectiveWindowRuleOnly(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)

	window, ok := effectiveWindow(mkRule(1, "12:30", "17:30"), nil, date, loc)

	require.True(t, ok)
	assert.Equal(t, types.TimeString("12:30"), window.Start)
	assert.Equal(t, types.TimeString("17:30"), window.End)
}

func TestEffectiveWindowMarkerWidens(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)
	markers := []domain.CalendarEvent{
		mkEvent(t, "VRIJ", "2026-09-07", "09:00", "10:30", loc),
		mkEvent(t, "VRIJ", "2026-09-07", "18:00", "20:00", loc),
	}

	window, ok := effectiveWindow(mkRule(1, "12:30", "17:30"), markers, date, loc)

	require.True(t, ok)
	assert.Equal(t, types.TimeString("09:00"), window.Start)
	assert.Equal(t, types.TimeString("20:00"), window.End)
}

func TestEffectiveWindowMarkerInsideRuleNoChange(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)
	markers := []domain.CalendarEvent{
		mkEvent(t, "VRIJ", "2026-09-07", "13:00", "15:00", loc),
	}

	window, ok := effectiveWindow(mkRule(1, "12:30", "17:30"), markers, date, loc)

	require.True(t, ok)
	assert.Equal(t, types.TimeString("12:30"), window.Start)
	assert.Equal(t, types.TimeString("17:30"), window.End)
}

func TestEffectiveWindowMarkerOnlyWithoutRule(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)
	markers := []domain.CalendarEvent{
		mkEvent(t, "VRIJ", "2026-09-07", "10:00", "12:00", loc),
	}

	window, ok := effectiveWindow(nil, markers, date, loc)

	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), window.Start)
	assert.Equal(t, types.TimeString("12:00"), window.End)
}

func TestEffectiveWindowClosedWithoutRuleAndMarkers(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)

	_, ok := effectiveWindow(nil, nil, date, loc)

	assert.False(t, ok)
}

func TestEffectiveWindowIgnoresAllDayAndOtherDates(t *testing.T) {
	loc := testLocation(t)
	date := testDate(t, "2026-09-07", loc)
	markers := []domain.CalendarEvent{
		mkAllDayEvent(t, "VRIJ", "2026-09-07", loc),
		mkEvent(t, "VRIJ", "2026-09-08", "08:00", "22:00", loc),
	}

	// оба маркера не относятся к дате - окно остается окном правила
	window, ok := effectiveWindow(mkRule(1, "12:30", "17:30"), markers, date, loc)

	require.True(t, ok)
	assert.Equal(t, types.TimeString("12:30"), window.Start)
	assert.Equal(t, types.TimeString("17:30"), window.End)

	_, ok = effectiveWindow(nil, markers, date, loc)
	assert.False(t, ok)
}

func TestGenerateSlotTimes(t *testing.T) {
	window := domain.TimeWindow{Start: "12:30", End: "17:30"}

	slots := generateSlotTimes(window, 30, 15)

	// последний старт 17:00: слот 17:00-17:30 целиком помещается в окно
	require.Len(t, slots, 19)
	assert.Equal(t, types.TimeString("12:30"), slots[0])
	assert.Equal(t, types.TimeString("17:00"), slots[len(slots)-1])
}

func TestGenerateSlotTimesExactFit(t *testing.T) {
	window := domain.TimeWindow{Start: "10:00", End: "11:00"}

	slots := generateSlotTimes(window, 60, 15)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
}

func TestGenerateSlotTimesDurationTooLong(t *testing.T) {
	window := domain.TimeWindow{Start: "10:00", End: "11:00"}

	slots := generateSlotTimes(window, 90, 15)

	assert.Empty(t, slots)
}

func TestFindConflictSymmetricBuffer(t *testing.T) {
	loc := testLocation(t)
	classifier := NewDefaultClassifier()
	blocking := []domain.CalendarEvent{
		mkEvent(t, "Afspraak - Jan", "2026-09-07", "13:00", "13:30", loc),
	}
	date := testDate(t, "2026-09-07", loc)

	cases := []struct {
		slot     string
		conflict bool
	}{
		{"12:15", false}, // слот 12:15-12:45, с буфером до 13:00 - касание границы не пересечение
		{"12:30", true},  // с буфером до 13:15 - заезжает на событие
		{"13:00", true},
		{"13:30", true}, // начало до конца буфера события (13:45)
		{"13:45", false},
	}

	for _, tc := range cases {
		slotStart := types.TimeString(tc.slot).OnDate(date, loc)
		conflict := findConflict(slotStart, 30, 15, false, blocking, classifier)
		if tc.conflict {
			assert.NotNil(t, conflict, "slot %s", tc.slot)
		} else {
			assert.Nil(t, conflict, "slot %s", tc.slot)
		}
	}
}

func TestFindConflictPersonalEventUnbuffered(t *testing.T) {
	loc := testLocation(t)
	classifier := NewDefaultClassifier()
	blocking := []domain.CalendarEvent{
		mkEvent(t, "Privé lunch", "2026-09-07", "13:00", "13:30", loc),
	}
	date := testDate(t, "2026-09-07", loc)

	// личное событие не требует буфера: слот 12:30-13:00 вплотную к нему свободен
	slotStart := types.TimeString("12:30").OnDate(date, loc)
	assert.Nil(t, findConflict(slotStart, 30, 15, false, blocking, classifier))

	slotStart = types.TimeString("12:45").OnDate(date, loc)
	assert.NotNil(t, findConflict(slotStart, 30, 15, false, blocking, classifier))

	slotStart = types.TimeString("13:30").OnDate(date, loc)
	assert.Nil(t, findConflict(slotStart, 30, 15, false, blocking, classifier))
}

func TestFindConflictLastSlotSkipsTrailingBuffer(t *testing.T) {
	loc := testLocation(t)
	classifier := NewDefaultClassifier()
	blocking := []domain.CalendarEvent{
		mkEvent(t, "Afspraak - Kees", "2026-09-07", "17:30", "18:00", loc),
	}
	date := testDate(t, "2026-09-07", loc)
	slotStart := types.TimeString("17:00").OnDate(date, loc)

	// обычный слот 17:00-17:30 с буфером до 17:45 конфликтует
	assert.NotNil(t, findConflict(slotStart, 30, 15, false, blocking, classifier))

	// последний слот дня не получает хвостового буфера
	assert.Nil(t, findConflict(slotStart, 30, 15, true, blocking, classifier))
}

func TestFindConflictIgnoresAllDayEvents(t *testing.T) {
	loc := testLocation(t)
	classifier := NewDefaultClassifier()
	blocking := []domain.CalendarEvent{
		mkAllDayEvent(t, "Vakantie herinnering", "2026-09-07", loc),
	}
	date := testDate(t, "2026-09-07", loc)

	slotStart := types.TimeString("12:30").OnDate(date, loc)
	assert.Nil(t, findConflict(slotStart, 30, 15, false, blocking, classifier))
}

func TestOverlapsBoundaryTouchIsNotOverlap(t *testing.T) {
	loc := testLocation(t)
	base := testDate(t, "2026-09-07", loc)
	at := func(hm string) time.Time { return types.TimeString(hm).OnDate(base, loc) }

	assert.False(t, overlaps(at("12:00"), at("13:00"), at("13:00"), at("14:00")))
	assert.False(t, overlaps(at("13:00"), at("14:00"), at("12:00"), at("13:00")))
	assert.True(t, overlaps(at("12:00"), at("13:01"), at("13:00"), at("14:00")))
	assert.True(t, overlaps(at("12:00"), at("15:00"), at("13:00"), at("14:00")))
	assert.True(t, overlaps(at("13:15"), at("13:45"), at("13:00"), at("14:00")))
}

func TestFilterDayEvents(t *testing.T) {
	loc := testLocation(t)
	events := []domain.CalendarEvent{
		mkEvent(t, "vandaag", "2026-09-07", "10:00", "11:00", loc),
		mkEvent(t, "morgen", "2026-09-08", "10:00", "11:00", loc),
		mkAllDayEvent(t, "hele dag", "2026-09-07", loc),
	}

	filtered := filterDayEvents(events, testDate(t, "2026-09-07", loc), loc)

	require.Len(t, filtered, 1)
	assert.Equal(t, "vandaag", filtered[0].Summary)
}
