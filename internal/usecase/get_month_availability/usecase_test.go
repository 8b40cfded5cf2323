package get_month_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

type fakeAvailability struct {
	result map[string]bool
	err    error
	opts   availability.Options
}

func (f *fakeAvailability) GetMonthAvailability(_ context.Context, _ int, _ time.Month, opts availability.Options) (map[string]bool, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeTreatments struct {
	treatments map[string]*domain.Treatment
}

func (f *fakeTreatments) GetByValue(_ context.Context, value string) (*domain.Treatment, error) {
	treatment, ok := f.treatments[value]
	if !ok {
		return nil, treatmentRepo.ErrTreatmentNotFound
	}
	return treatment, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T) (*UseCase, *fakeAvailability, *fakeTreatments) {
	t.Helper()
	loc, err := time.LoadLocation(domain.PracticeTimezone)
	require.NoError(t, err)

	svc := &fakeAvailability{result: map[string]bool{}}
	treatments := &fakeTreatments{treatments: map[string]*domain.Treatment{}}
	uc := NewUseCase(svc, treatments, loc, nopLogger{})
	uc.timeProvider = &fixedClock{now: time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)}
	return uc, svc, treatments
}

func TestExecuteBuildsGrid(t *testing.T) {
	uc, svc, _ := newTestUseCase(t)
	svc.result = map[string]bool{"2026-09-07": true, "2026-09-12": true}

	resp, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 9})

	require.NoError(t, err)
	assert.Equal(t, "September", resp.MonthName)
	require.Len(t, resp.Days, 42)

	// сентябрь 2026 начинается во вторник - сетка стартует с понедельника 31 августа
	assert.Equal(t, "2026-08-31", resp.Days[0].Date)
	assert.False(t, resp.Days[0].IsCurrentMonth)
	assert.Equal(t, time.Monday, mustParseDate(t, resp.Days[0].Date).Weekday())

	first := dayByDate(t, resp.Days, "2026-09-01")
	assert.True(t, first.IsCurrentMonth)
	assert.True(t, first.IsToday)
	assert.False(t, first.IsPastDate)

	monday := dayByDate(t, resp.Days, "2026-09-07")
	assert.True(t, monday.HasAvailability)

	saturday := dayByDate(t, resp.Days, "2026-09-12")
	assert.True(t, saturday.IsWeekend)
	assert.True(t, saturday.HasAvailability)

	// ячейки соседнего месяца никогда не показывают доступность
	outside := dayByDate(t, resp.Days, "2026-08-31")
	assert.False(t, outside.HasAvailability)
}

func TestExecuteResolvesTreatmentDuration(t *testing.T) {
	uc, svc, treatments := newTestUseCase(t)
	treatments.treatments["vervolgconsult"] = &domain.Treatment{Value: "vervolgconsult", DurationMinutes: 45}

	_, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 9, TreatmentValue: "vervolgconsult"})
	require.NoError(t, err)
	assert.Equal(t, 45, svc.opts.TreatmentDuration)

	// явная длительность имеет приоритет над процедурой
	_, err = uc.Execute(context.Background(), &Request{Year: 2026, Month: 9, TreatmentValue: "vervolgconsult", DurationMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, 60, svc.opts.TreatmentDuration)

	_, err = uc.Execute(context.Background(), &Request{Year: 2026, Month: 9, TreatmentValue: "bestaat-niet"})
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecuteValidatesRequest(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = uc.Execute(context.Background(), &Request{Year: 1999, Month: 5})
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestExecuteMapsServiceErrors(t *testing.T) {
	uc, svc, _ := newTestUseCase(t)

	svc.err = availability.ErrUpstreamFetch
	_, err := uc.Execute(context.Background(), &Request{Year: 2026, Month: 9})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	svc.err = availability.ErrInvalidInput
	_, err = uc.Execute(context.Background(), &Request{Year: 2026, Month: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc.err = errors.New("iets anders")
	_, err = uc.Execute(context.Background(), &Request{Year: 2026, Month: 9})
	assert.ErrorIs(t, err, ErrInternal)
}

func dayByDate(t *testing.T, days []Day, date string) Day {
	t.Helper()
	for _, day := range days {
		if day.Date == date {
			return day
		}
	}
	t.Fatalf("day %s not in grid", date)
	return Day{}
}

func mustParseDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	return parsed
}
