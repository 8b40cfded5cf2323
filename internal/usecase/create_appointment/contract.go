package create_appointment

import (
	"context"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetActiveByDate получает все неотменённые заявки на дату для повторной проверки слота
	GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
}

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	GetByValue(ctx context.Context, value string) (*domain.Treatment, error)
}

// AvailabilityService интерфейс движка расчёта доступности
type AvailabilityService interface {
	GetDayAvailability(ctx context.Context, date time.Time, opts availability.Options) (*availability.DayAvailability, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	CreateAppointment(ctx context.Context, appt googlecalendar.AppointmentEvent) (*googlecalendar.Event, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
