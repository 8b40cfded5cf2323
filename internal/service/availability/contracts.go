package availability

import (
	"context"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// CalendarGateway интерфейс шлюза внешнего календаря
type CalendarGateway interface {
	// ListEvents получает события всех календарей практики за период [from, to]
	ListEvents(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
}

// RuleRepository интерфейс хранилища правил рабочих часов
type RuleRepository interface {
	// GetByDayOfWeek получает активное правило для дня недели (0=воскресенье .. 6=суббота)
	GetByDayOfWeek(ctx context.Context, dayOfWeek int) (*domain.WorkingHoursRule, error)
}

// EventClassifier классификатор событий календаря.
// Правила распознавания вынесены за интерфейс, чтобы словари можно было
// менять и локализовывать, не трогая алгоритм расчёта слотов
type EventClassifier interface {
	// IsMarker событие-маркер продления рабочих часов (не блокирует время)
	IsMarker(event *domain.CalendarEvent) bool
	// IsPersonal личное событие - блокирует слот без буфера
	IsPersonal(event *domain.CalendarEvent) bool
	// IsAdminBlock административная блокировка времени
	IsAdminBlock(event *domain.CalendarEvent) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
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
