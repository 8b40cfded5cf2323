package domain

import "github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"

// TimeWindow is a start/end wall-clock range within one day
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Minutes returns the window length in minutes
func (w TimeWindow) Minutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// CanFit returns true if a booking of the given duration fits inside the window
func (w TimeWindow) CanFit(durationMinutes int) bool {
	return w.Minutes() >= durationMinutes
}

// IsZero returns true if the window is empty or inverted
func (w TimeWindow) IsZero() bool {
	return w.Minutes() <= 0
}

// TimeSlot is a candidate booking start time with its availability verdict.
// Computed fresh on every query, never persisted.
type TimeSlot struct {
	Time         types.TimeString
	Available    bool
	IsBlocked    bool   // conflicting event is an administrator block
	EventSummary string // summary of the first conflicting event, empty when available
}

// DayStatus classifies why a day did or did not produce availability.
// A closed day (no rule, no marker events) is distinguishable from an
// exhausted one (slots existed but all conflicted).
type DayStatus string

const (
	DayStatusOpen      DayStatus = "open"
	DayStatusClosed    DayStatus = "closed"
	DayStatusExhausted DayStatus = "exhausted"
)

// QuickSlot is a quick-pick suggestion: the first bookable slots found
// scanning forward from tomorrow, with a human-facing Dutch label.
type QuickSlot struct {
	Date  string // YYYY-MM-DD
	Time  types.TimeString
	Label string // "Morgen", "Overmorgen", weekday name
}

// CalendarDay is one cell of the month grid view
type CalendarDay struct {
	Date            string // YYYY-MM-DD
	Day             int
	IsCurrentMonth  bool
	IsPastDate      bool
	IsWeekend       bool
	IsToday         bool
	HasAvailability bool
}
