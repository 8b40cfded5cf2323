package domain

import "time"

// CalendarEvent represents a single event snapshot read from an external calendar.
// Events are owned entirely by the calendar; the service only reads them for the
// query window and never persists them.
type CalendarEvent struct {
	ID          string
	CalendarID  string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	ColorID     string
}

// IsTimed returns true if the event has a concrete start/end time.
// All-day events are never treated as timed busy blocks.
func (e *CalendarEvent) IsTimed() bool {
	return !e.AllDay && !e.Start.IsZero() && !e.End.IsZero()
}

// OnDate returns true if the event starts on the given calendar date
// in the practice timezone.
func (e *CalendarEvent) OnDate(date time.Time, loc *time.Location) bool {
	if !e.IsTimed() {
		return false
	}
	y1, m1, d1 := e.Start.In(loc).Date()
	y2, m2, d2 := date.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
