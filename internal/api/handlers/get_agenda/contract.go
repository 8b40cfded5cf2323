package get_agenda

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Agenda(ctx context.Context) (*models.AgendaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
