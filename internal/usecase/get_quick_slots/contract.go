package get_quick_slots

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// AvailabilityService интерфейс движка расчёта доступности
type AvailabilityService interface {
	FindNextSlots(ctx context.Context, opts availability.Options, count int) ([]domain.QuickSlot, error)
}

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	GetByValue(ctx context.Context, value string) (*domain.Treatment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
