package get_quick_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

type fakeAvailability struct {
	slots []domain.QuickSlot
	err   error
	opts  availability.Options
	count int
}

func (f *fakeAvailability) FindNextSlots(_ context.Context, opts availability.Options, count int) ([]domain.QuickSlot, error) {
	f.opts, f.count = opts, count
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
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

func TestExecute(t *testing.T) {
	svc := &fakeAvailability{slots: []domain.QuickSlot{
		{Date: "2026-09-02", Time: "09:00", Label: "Morgen"},
		{Date: "2026-09-03", Time: "13:45", Label: "Overmorgen"},
	}}
	treatments := &fakeTreatments{treatments: map[string]*domain.Treatment{
		"vervolgconsult": {Value: "vervolgconsult", DurationMinutes: 45},
	}}
	uc := NewUseCase(svc, treatments, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TreatmentValue: "vervolgconsult", Count: 2})

	require.NoError(t, err)
	assert.Equal(t, 45, svc.opts.TreatmentDuration)
	assert.Equal(t, 2, svc.count)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, QuickSlot{Date: "2026-09-02", Time: "09:00", Label: "Morgen"}, resp.Slots[0])
}

func TestExecuteErrors(t *testing.T) {
	svc := &fakeAvailability{}
	treatments := &fakeTreatments{treatments: map[string]*domain.Treatment{}}
	uc := NewUseCase(svc, treatments, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TreatmentValue: "bestaat-niet"})
	assert.ErrorIs(t, err, ErrTreatmentNotFound)

	svc.err = availability.ErrUpstreamFetch
	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
