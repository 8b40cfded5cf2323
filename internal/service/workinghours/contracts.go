package workinghours

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// RuleRepository интерфейс репозитория правил рабочих часов
type RuleRepository interface {
	GetByDayOfWeek(ctx context.Context, dayOfWeek int) (*domain.WorkingHoursRule, error)
	List(ctx context.Context) ([]*domain.WorkingHoursRule, error)
	Upsert(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error)
	Deactivate(ctx context.Context, dayOfWeek int) error
}

// CacheInvalidator сброс кэша правил в движке доступности.
// Любое изменение правил делает закэшированные расчёты устаревшими
type CacheInvalidator interface {
	ClearRuleCache()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
