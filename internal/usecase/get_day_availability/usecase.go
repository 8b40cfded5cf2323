package get_day_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// UseCase use case для получения доступных слотов одного дня
type UseCase struct {
	availability  AvailabilityService
	treatmentRepo TreatmentRepository
	loc           *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityService AvailabilityService,
	treatmentRepo TreatmentRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:  availabilityService,
		treatmentRepo: treatmentRepo,
		loc:           loc,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: date=%s, treatment=%q, duration=%d",
		req.Date, req.TreatmentValue, req.DurationMinutes)

	date, err := parseDate(req.Date, uc.loc)
	if err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	day, err := uc.availability.GetDayAvailability(ctx, date, availability.Options{
		TreatmentDuration: duration,
		BufferMinutes:     -1,
	})
	if err != nil {
		return nil, uc.mapServiceError("GetDayAvailability", err)
	}

	resp := &Response{
		Date:   day.Date,
		Status: string(day.Status),
		Slots:  make([]Slot, 0, len(day.Slots)),
	}
	for _, slot := range day.Slots {
		resp.Slots = append(resp.Slots, Slot{Time: slot.Time.String(), Available: slot.Available})
	}

	uc.logger.Info("GetDayAvailability: date=%s, status=%s, slots=%d", day.Date, day.Status, len(resp.Slots))
	return resp, nil
}

// resolveDuration определяет длительность приёма: явная длительность
// запроса, длительность процедуры или значение по умолчанию
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes > 0 {
		return req.DurationMinutes, nil
	}

	if req.TreatmentValue == "" {
		return 0, nil // сервис подставит длительность по умолчанию
	}

	treatment, err := uc.treatmentRepo.GetByValue(ctx, req.TreatmentValue)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("GetDayAvailability: treatment %q not found", req.TreatmentValue)
			return 0, ErrTreatmentNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get treatment %q: %v", req.TreatmentValue, err)
		return 0, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	return treatment.DurationMinutes, nil
}

// mapServiceError транслирует ошибки движка доступности в ошибки usecase
func (uc *UseCase) mapServiceError(op string, err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("%s: invalid input: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availability.ErrUpstreamFetch):
		uc.logger.Error("%s: upstream fetch failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("%s: availability service error: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
