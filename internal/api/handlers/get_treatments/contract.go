package get_treatments

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Treatments(ctx context.Context) (*models.TreatmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
