package get_month_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

// gridCells сетка месяца всегда 6 недель по 7 дней, как рисует её фронтенд
const gridCells = 42

// UseCase use case для получения календарной сетки месяца с доступностью
type UseCase struct {
	availability  AvailabilityService
	treatmentRepo TreatmentRepository
	timeProvider  TimeProvider
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
		timeProvider:  &RealTimeProvider{},
		loc:           loc,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthAvailability: year=%d, month=%d, treatment=%q", req.Year, req.Month, req.TreatmentValue)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthAvailability: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	month := time.Month(req.Month)
	availabilityMap, err := uc.availability.GetMonthAvailability(ctx, req.Year, month, availability.Options{
		TreatmentDuration: duration,
		BufferMinutes:     -1,
	})
	if err != nil {
		return nil, uc.mapServiceError(err)
	}

	resp := &Response{
		Year:         req.Year,
		Month:        req.Month,
		MonthName:    dutchMonths[month],
		Days:         uc.buildGrid(req.Year, month, availabilityMap),
		Availability: availabilityMap,
	}

	uc.logger.Info("GetMonthAvailability: year=%d, month=%d, cells=%d", req.Year, req.Month, len(resp.Days))
	return resp, nil
}

// buildGrid строит сетку месяца: 6 недель, первая колонка - понедельник.
// Ячейки соседних месяцев присутствуют для выравнивания сетки,
// но доступность для них не вычисляется
func (uc *UseCase) buildGrid(year int, month time.Month, availabilityMap map[string]bool) []Day {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, uc.loc)
	mondayOffset := (int(monthStart.Weekday()) + 6) % 7
	gridStart := monthStart.AddDate(0, 0, -mondayOffset)

	now := uc.timeProvider.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	days := make([]Day, 0, gridCells)
	for i := 0; i < gridCells; i++ {
		date := gridStart.AddDate(0, 0, i)
		dateStr := date.Format(domain.DateFormat)
		inMonth := date.Month() == month

		days = append(days, Day{
			Date:            dateStr,
			Day:             date.Day(),
			IsCurrentMonth:  inMonth,
			IsPastDate:      date.Before(today),
			IsWeekend:       date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
			IsToday:         date.Equal(today),
			HasAvailability: inMonth && availabilityMap[dateStr],
		})
	}

	return days
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
			uc.logger.Warn("GetMonthAvailability: treatment %q not found", req.TreatmentValue)
			return 0, ErrTreatmentNotFound
		}
		uc.logger.Error("GetMonthAvailability: failed to get treatment %q: %v", req.TreatmentValue, err)
		return 0, fmt.Errorf("%w: failed to get treatment: %v", ErrInternal, err)
	}

	return treatment.DurationMinutes, nil
}

// mapServiceError транслирует ошибки движка доступности в ошибки usecase
func (uc *UseCase) mapServiceError(err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("GetMonthAvailability: invalid input: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availability.ErrUpstreamFetch):
		uc.logger.Error("GetMonthAvailability: upstream fetch failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("GetMonthAvailability: availability service error: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

var dutchMonths = map[time.Month]string{
	time.January:   "Januari",
	time.February:  "Februari",
	time.March:     "Maart",
	time.April:     "April",
	time.May:       "Mei",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "Augustus",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "December",
}
