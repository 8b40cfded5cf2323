package confirm_appointment

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
