package get_day_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getDayAvailability "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_day_availability"
)

type fakeUseCase struct {
	resp *getDayAvailability.Response
	err  error
	req  *getDayAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDayAvailability.Request) (*getDayAvailability.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &getDayAvailability.Response{
		Date:   "2026-09-07",
		Status: "open",
		Slots: []getDayAvailability.Slot{
			{Time: "12:30", Available: false},
			{Time: "13:45", Available: true},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "/api/v1/availability/day?date=2026-09-07&treatment=vervolgconsult&duration=45")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	require.NotNil(t, uc.req)
	assert.Equal(t, "2026-09-07", uc.req.Date)
	assert.Equal(t, "vervolgconsult", uc.req.TreatmentValue)
	assert.Equal(t, 45, uc.req.DurationMinutes)

	var resp getDayAvailability.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "open", resp.Status)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[1].Available)
}

func TestHandleBadRequest(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := serve(h, "/api/v1/availability/day")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgMissingDate)

	rec = serve(h, "/api/v1/availability/day?date=2026-09-07&duration=nul")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidDuration)
}

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{getDayAvailability.ErrInvalidDate, http.StatusBadRequest, msgInvalidDate},
		{getDayAvailability.ErrTreatmentNotFound, http.StatusNotFound, msgTreatmentNotFound},
		{getDayAvailability.ErrUpstreamUnavailable, http.StatusServiceUnavailable, msgCalendarUnavailable},
		{errors.New("iets anders"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		h := NewHandler(&fakeUseCase{err: tc.err}, nopLogger{})
		rec := serve(h, "/api/v1/availability/day?date=2026-09-07")

		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		if tc.msg != "" {
			assert.Contains(t, rec.Body.String(), tc.msg, "error %v", tc.err)
		}
	}
}
