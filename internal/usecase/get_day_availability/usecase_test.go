package get_day_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

type fakeAvailability struct {
	day  *availability.DayAvailability
	err  error
	opts availability.Options
}

func (f *fakeAvailability) GetDayAvailability(_ context.Context, _ time.Time, opts availability.Options) (*availability.DayAvailability, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T) (*UseCase, *fakeAvailability, *fakeTreatments) {
	t.Helper()
	loc, err := time.LoadLocation(domain.PracticeTimezone)
	require.NoError(t, err)

	svc := &fakeAvailability{day: &availability.DayAvailability{
		Date:   "2026-09-07",
		Status: domain.DayStatusOpen,
		Slots: []domain.TimeSlot{
			{Time: "12:30", Available: false, EventSummary: "Afspraak - Jan"},
			{Time: "13:45", Available: true},
		},
	}}
	treatments := &fakeTreatments{treatments: map[string]*domain.Treatment{}}
	return NewUseCase(svc, treatments, loc, nopLogger{}), svc, treatments
}

func TestExecute(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-09-07"})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "open", resp.Status)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, Slot{Time: "12:30", Available: false}, resp.Slots[0])
	assert.Equal(t, Slot{Time: "13:45", Available: true}, resp.Slots[1])
}

func TestExecuteDurationResolution(t *testing.T) {
	uc, svc, treatments := newTestUseCase(t)
	treatments.treatments["vervolgconsult"] = &domain.Treatment{Value: "vervolgconsult", DurationMinutes: 45}

	// без процедуры и длительности сервис сам подставляет умолчание
	_, err := uc.Execute(context.Background(), &Request{Date: "2026-09-07"})
	require.NoError(t, err)
	assert.Zero(t, svc.opts.TreatmentDuration)
	assert.Equal(t, -1, svc.opts.BufferMinutes)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-09-07", TreatmentValue: "vervolgconsult"})
	require.NoError(t, err)
	assert.Equal(t, 45, svc.opts.TreatmentDuration)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-09-07", TreatmentValue: "vervolgconsult", DurationMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, 90, svc.opts.TreatmentDuration)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-09-07", TreatmentValue: "bestaat-niet"})
	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecuteDateValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "07-09-2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteMapsServiceErrors(t *testing.T) {
	uc, svc, _ := newTestUseCase(t)

	svc.err = availability.ErrUpstreamFetch
	_, err := uc.Execute(context.Background(), &Request{Date: "2026-09-07"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	svc.err = availability.ErrInvalidInput
	_, err = uc.Execute(context.Background(), &Request{Date: "2026-09-07"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
