package get_day_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	getDayAvailability "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_day_availability"
)

const (
	msgMissingDate         = "datum is verplicht"
	msgInvalidDate         = "ongeldige datum, verwacht formaat YYYY-MM-DD"
	msgInvalidDuration     = "ongeldige behandelduur"
	msgTreatmentNotFound   = "behandeling niet gevonden"
	msgCalendarUnavailable = "agenda is tijdelijk niet beschikbaar, probeer het later opnieuw"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/day
// Query params: date (required, YYYY-MM-DD), treatment, duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/day - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration := 0
	if durationStr := query.Get("duration"); durationStr != "" {
		parsed, err := strconv.Atoi(durationStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /availability/day - Invalid duration: %q", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getDayAvailability.Request{
		Date:            dateStr,
		TreatmentValue:  query.Get("treatment"),
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability/day - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDayAvailability.ErrTreatmentNotFound):
			h.logger.Warn("GET /availability/day - Treatment not found: %q", query.Get("treatment"))
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getDayAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/day - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getDayAvailability.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/day - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /availability/day - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/day - Availability retrieved: date=%s, status=%s, slots=%d",
		result.Date, result.Status, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
