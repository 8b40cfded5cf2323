package get_quick_slots

import (
	"context"

	getQuickSlots "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_quick_slots"
)

type GetQuickSlotsUseCase interface {
	Execute(ctx context.Context, req *getQuickSlots.Request) (*getQuickSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
