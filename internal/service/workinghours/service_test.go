package workinghours

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	rulesRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/workinghours"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours/models"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

type fakeRuleRepo struct {
	rules map[int]*domain.WorkingHoursRule
	err   error
}

func (r *fakeRuleRepo) GetByDayOfWeek(_ context.Context, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	if r.err != nil {
		return nil, r.err
	}
	rule, ok := r.rules[dayOfWeek]
	if !ok {
		return nil, rulesRepo.ErrRuleNotFound
	}
	return rule, nil
}

func (r *fakeRuleRepo) List(_ context.Context) ([]*domain.WorkingHoursRule, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.WorkingHoursRule
	for day := 0; day < 7; day++ {
		if rule, ok := r.rules[day]; ok {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) Upsert(_ context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	if r.err != nil {
		return nil, r.err
	}
	saved := *rule
	saved.ID = int64(rule.DayOfWeek + 1)
	r.rules[rule.DayOfWeek] = &saved
	return &saved, nil
}

func (r *fakeRuleRepo) Deactivate(_ context.Context, dayOfWeek int) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rules[dayOfWeek]; !ok {
		return rulesRepo.ErrRuleNotFound
	}
	delete(r.rules, dayOfWeek)
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (i *fakeInvalidator) ClearRuleCache() { i.calls++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeRuleRepo, *fakeInvalidator) {
	repo := &fakeRuleRepo{rules: make(map[int]*domain.WorkingHoursRule)}
	invalidator := &fakeInvalidator{}
	return NewService(repo, invalidator, nopLogger{}), repo, invalidator
}

func TestUpsert(t *testing.T) {
	svc, repo, invalidator := newTestService()

	resp, err := svc.Upsert(context.Background(), &models.UpsertRuleRequest{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:30",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.DayOfWeek)
	assert.Equal(t, "Maandag", resp.DayName)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "17:30", resp.EndTime)
	assert.True(t, resp.IsActive)

	// любая мутация сбрасывает кэш движка доступности
	assert.Equal(t, 1, invalidator.calls)
	require.NotNil(t, repo.rules[1])
}

func TestUpsertValidation(t *testing.T) {
	svc, _, invalidator := newTestService()

	cases := []models.UpsertRuleRequest{
		{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "geen tijd", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"},
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}, // начало после конца
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
	}

	for _, req := range cases {
		_, err := svc.Upsert(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput, "request %+v", req)
	}
	assert.Zero(t, invalidator.calls, "failed validation must not touch the cache")
}

func TestUpsertTrimsSeconds(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.Upsert(context.Background(), &models.UpsertRuleRequest{
		DayOfWeek: 3,
		StartTime: "09:00:00",
		EndTime:   "17:30:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, types.TimeString("17:30"), repo.rules[3].EndTime)
}

func TestGetByDayOfWeek(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.rules[2] = &domain.WorkingHoursRule{ID: 5, DayOfWeek: 2, StartTime: "10:00", EndTime: "16:00", IsActive: true}

	resp, err := svc.GetByDayOfWeek(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Dinsdag", resp.DayName)

	_, err = svc.GetByDayOfWeek(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	_, err = svc.GetByDayOfWeek(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.rules[1] = &domain.WorkingHoursRule{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true}
	repo.rules[4] = &domain.WorkingHoursRule{ID: 2, DayOfWeek: 4, StartTime: "12:30", EndTime: "17:30", IsActive: true}

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Rules, 2)
	assert.Equal(t, "Maandag", resp.Rules[0].DayName)
	assert.Equal(t, "Donderdag", resp.Rules[1].DayName)
}

func TestDeactivate(t *testing.T) {
	svc, repo, invalidator := newTestService()
	repo.rules[1] = &domain.WorkingHoursRule{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true}

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.Equal(t, 1, invalidator.calls)
	assert.Empty(t, repo.rules)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 1), ErrRuleNotFound)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 7), ErrInvalidInput)
}

func TestRepositoryErrorsWrapped(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.err = errors.New("pq: connection refused")

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetByDayOfWeek(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Upsert(context.Background(), &models.UpsertRuleRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, ErrInternal)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 1), ErrInternal)
}
