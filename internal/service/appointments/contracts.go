package appointments

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithTreatments(ctx context.Context) ([]*domain.AppointmentWithTreatment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SetTransferred(ctx context.Context, id int64, transferred bool) error
}

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	ListActive(ctx context.Context) ([]*domain.Treatment, error)
}

// CalendarClient интерфейс клиента внешнего календаря для синхронизации
// событий-приёмов со статусом заявки
type CalendarClient interface {
	UpdateEvent(ctx context.Context, eventID string, patch *googlecalendar.Event) (*googlecalendar.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
