package get_day_availability

import (
	"context"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// AvailabilityService интерфейс движка расчёта доступности
type AvailabilityService interface {
	GetDayAvailability(ctx context.Context, date time.Time, opts availability.Options) (*availability.DayAvailability, error)
}

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	// GetByValue получает активную процедуру по машинному значению ("massage-60")
	GetByValue(ctx context.Context, value string) (*domain.Treatment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
