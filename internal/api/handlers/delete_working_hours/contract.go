package delete_working_hours

import (
	"context"
)

type WorkingHoursService interface {
	Deactivate(ctx context.Context, dayOfWeek int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
