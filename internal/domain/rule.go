package domain

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// WorkingHoursRule represents the weekly working-hours rule for one day of week.
// At most one active rule exists per day of week (0=Sunday .. 6=Saturday).
type WorkingHoursRule struct {
	ID        int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
}

// Window returns the rule as a bookable time window.
func (r *WorkingHoursRule) Window() TimeWindow {
	return TimeWindow{Start: r.StartTime, End: r.EndTime}
}

// Minutes returns the length of the rule window in minutes.
func (r *WorkingHoursRule) Minutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}
