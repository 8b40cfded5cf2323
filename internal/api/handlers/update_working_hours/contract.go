package update_working_hours

import (
	"context"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Upsert(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
