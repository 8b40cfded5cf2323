package get_working_hours

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	List(ctx context.Context) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
