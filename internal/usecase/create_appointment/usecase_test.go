package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

type fakeApptRepo struct {
	active      []*domain.Appointment
	created     *domain.Appointment
	linkedEvent string
	createErr   error
	nextID      int64
}

func (r *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	saved := *appt
	saved.ID = r.nextID
	r.created = &saved
	return &saved, nil
}

func (r *fakeApptRepo) GetActiveByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return r.active, nil
}

func (r *fakeApptRepo) SetCalendarEventID(_ context.Context, _ int64, eventID string) error {
	r.linkedEvent = eventID
	return nil
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

type fakeAvailability struct {
	day *availability.DayAvailability
	err error
}

func (f *fakeAvailability) GetDayAvailability(_ context.Context, _ time.Time, _ availability.Options) (*availability.DayAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

type fakeCalendar struct {
	created *googlecalendar.AppointmentEvent
	err     error
}

func (c *fakeCalendar) CreateAppointment(_ context.Context, appt googlecalendar.AppointmentEvent) (*googlecalendar.Event, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created = &appt
	return &googlecalendar.Event{ID: "evt-new"}, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct {
	serializableCalls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	apptRepo  *fakeApptRepo
	avail     *fakeAvailability
	calendar  *fakeCalendar
	txManager *fakeTxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation(domain.PracticeTimezone)
	require.NoError(t, err)

	apptRepo := &fakeApptRepo{}
	treatments := &fakeTreatments{treatments: map[string]*domain.Treatment{
		"vervolgconsult": {ID: 2, Value: "vervolgconsult", Label: "Vervolgconsult", DurationMinutes: 45},
	}}
	avail := &fakeAvailability{day: &availability.DayAvailability{
		Date:   "2026-09-07",
		Status: domain.DayStatusOpen,
		Slots: []domain.TimeSlot{
			{Time: "13:00", Available: true},
			{Time: "13:15", Available: false, EventSummary: "Afspraak - Piet"},
		},
	}}
	calendar := &fakeCalendar{}
	txManager := &fakeTxManager{}

	uc := NewUseCase(apptRepo, treatments, avail, calendar, txManager, loc, nopLogger{})
	return &fixture{uc: uc, apptRepo: apptRepo, avail: avail, calendar: calendar, txManager: txManager}
}

func validRequest() *Request {
	return &Request{
		TreatmentValue: "vervolgconsult",
		Date:           "2026-09-07",
		Time:           "13:00",
		ClientName:     "Jan de Vries",
		ClientEmail:    "jan@example.nl",
		ClientPhone:    "0612345678",
		Message:        "Graag een rustige behandeling",
	}
}

func TestExecute(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Vervolgconsult", resp.TreatmentLabel)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "13:00", resp.Time)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, resp.CalendarEventID)
	assert.Equal(t, "evt-new", *resp.CalendarEventID)

	// заявка создается в Serializable транзакции
	assert.Equal(t, 1, f.txManager.serializableCalls)
	require.NotNil(t, f.apptRepo.created)
	assert.Equal(t, types.TimeString("13:00"), f.apptRepo.created.AppointmentTime)
	assert.Equal(t, "evt-new", f.apptRepo.linkedEvent)

	// событие в календаре получает данные клиента и процедуры
	require.NotNil(t, f.calendar.created)
	assert.Equal(t, "Jan de Vries", f.calendar.created.ClientName)
	assert.Equal(t, "Vervolgconsult", f.calendar.created.TreatmentName)
	assert.Equal(t, 13, f.calendar.created.Start.Hour())
	assert.Equal(t, 45, int(f.calendar.created.End.Sub(f.calendar.created.Start).Minutes()))
}

func TestExecuteCalendarFailureKeepsAppointment(t *testing.T) {
	f := newFixture(t)
	f.calendar.err = errors.New("google: 503")

	resp, err := f.uc.Execute(context.Background(), validRequest())

	// заявка уже зафиксирована в БД - отказ календаря её не отменяет
	require.NoError(t, err)
	assert.Nil(t, resp.CalendarEventID)
	require.NotNil(t, f.apptRepo.created)
	assert.Empty(t, f.apptRepo.linkedEvent)
}

func TestExecuteSlotTakenInCalendar(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Time = "13:15"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, f.apptRepo.created)
}

func TestExecuteSlotOutsideBookableHours(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Time = "22:00"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecuteDayClosed(t *testing.T) {
	f := newFixture(t)
	f.avail.day = &availability.DayAvailability{Date: "2026-09-07", Status: domain.DayStatusClosed, Slots: []domain.TimeSlot{}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecuteOverlapWithPendingAppointment(t *testing.T) {
	f := newFixture(t)
	// между показом слотов и отправкой формы другой клиент занял 12:30-13:15
	f.apptRepo.active = []*domain.Appointment{
		{ID: 7, AppointmentTime: "12:30", DurationMinutes: 45, Status: domain.StatusPending},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, f.apptRepo.created)
}

func TestExecuteAdjacentAppointmentDoesNotOverlap(t *testing.T) {
	f := newFixture(t)
	// заявка 12:15-13:00 граничит со слотом 13:00 и не конфликтует
	f.apptRepo.active = []*domain.Appointment{
		{ID: 7, AppointmentTime: "12:15", DurationMinutes: 45, Status: domain.StatusPending},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecuteUpstreamUnavailable(t *testing.T) {
	f := newFixture(t)
	f.avail.err = availability.ErrUpstreamFetch

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExecuteTreatmentNotFound(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.TreatmentValue = "bestaat-niet"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(req *Request)
		want   error
	}{
		{"missing treatment", func(r *Request) { r.TreatmentValue = " " }, ErrInvalidInput},
		{"missing name", func(r *Request) { r.ClientName = "" }, ErrInvalidInput},
		{"missing phone", func(r *Request) { r.ClientPhone = "" }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.ClientEmail = "jan@" }, ErrInvalidInput},
		{"email without domain dot", func(r *Request) { r.ClientEmail = "jan@localhost" }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = "" }, ErrInvalidInput},
		{"bad date", func(r *Request) { r.Date = "07-09-2026" }, ErrInvalidDate},
		{"bad time", func(r *Request) { r.Time = "kwart over een" }, ErrInvalidTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("jan@example.nl"))
	assert.True(t, validEmail("jan.de.vries+afspraak@sub.example.nl"))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("jan"))
	assert.False(t, validEmail("@example.nl"))
	assert.False(t, validEmail("jan@nl"))
	assert.False(t, validEmail("jan@.nl"))
}

func TestFindOverlap(t *testing.T) {
	active := []*domain.Appointment{
		{ID: 1, AppointmentTime: "10:00", DurationMinutes: 60},
	}

	assert.NotNil(t, findOverlap(active, "10:30", 30))
	assert.NotNil(t, findOverlap(active, "09:45", 30))
	assert.Nil(t, findOverlap(active, "11:00", 30)) // граничит, не пересекается
	assert.Nil(t, findOverlap(active, "09:00", 60))
}
