package debug_availability

import (
	"context"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

type AvailabilityService interface {
	DebugDayAvailability(ctx context.Context, date time.Time, opts availability.Options) (*availability.DayDebug, error)
	DebugMonthAvailability(ctx context.Context, year int, month time.Month, opts availability.Options) ([]availability.DayDebug, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
