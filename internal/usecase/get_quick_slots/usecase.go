package get_quick_slots

import (
	"context"
	"errors"
	"fmt"

	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// UseCase use case для получения первых свободных слотов ("Snelle opties")
type UseCase struct {
	availability  AvailabilityService
	treatmentRepo TreatmentRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityService AvailabilityService, treatmentRepo TreatmentRepository, logger Logger) *UseCase {
	return &UseCase{
		availability:  availabilityService,
		treatmentRepo: treatmentRepo,
		logger:        logger,
	}
}

// Execute выполняет use case поиска быстрых вариантов записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuickSlots: treatment=%q, duration=%d, count=%d",
		req.TreatmentValue, req.DurationMinutes, req.Count)

	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	slots, err := uc.availability.FindNextSlots(ctx, availability.Options{
		TreatmentDuration: duration,
		BufferMinutes:     -1,
	}, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			uc.logger.Warn("GetQuickSlots: invalid input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, availability.ErrUpstreamFetch):
			uc.logger.Error("GetQuickSlots: upstream fetch failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		default:
			uc.logger.Error("GetQuickSlots: availability service error: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	resp := &Response{Slots: make([]QuickSlot, 0, len(slots))}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, QuickSlot{
			Date:  slot.Date,
			Time:  slot.Time.String(),
			Label: slot.Label,
		})
	}

	uc.logger.Info("GetQuickSlots: found %d slots", len(resp.Slots))
	return resp, nil
}

// resolveDuration определяет длительность приёма: явная длительность
// запроса, длительность процедуры или значение по умолчанию
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes > 0 {
		return req.DurationMinutes, nil
	}

	if req.TreatmentValue == "" {
		return 0, nil
	}

	treatment, err := uc.treatmentRepo.GetByValue(ctx, req.TreatmentValue)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("GetQuickSlots: treatment %q not found", req.TreatmentValue)
			return 0, ErrTreatmentNotFound
		}
		uc.logger.Error("GetQuickSlots: failed to get treatment %q: %v", req.TreatmentValue, err)
		return 0, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	return treatment.DurationMinutes, nil
}
