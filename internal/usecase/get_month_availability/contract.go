package get_month_availability

import (
	"context"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// AvailabilityService интерфейс движка расчёта доступности
type AvailabilityService interface {
	GetMonthAvailability(ctx context.Context, year int, month time.Month, opts availability.Options) (map[string]bool, error)
}

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	GetByValue(ctx context.Context, value string) (*domain.Treatment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
