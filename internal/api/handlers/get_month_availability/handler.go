package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	getMonthAvailability "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_month_availability"
)

const (
	msgInvalidYear         = "ongeldig jaar"
	msgInvalidMonth        = "ongeldige maand, verwacht 1-12"
	msgInvalidDuration     = "ongeldige behandelduur"
	msgTreatmentNotFound   = "behandeling niet gevonden"
	msgCalendarUnavailable = "agenda is tijdelijk niet beschikbaar, probeer het later opnieuw"
)

type Handler struct {
	useCase GetMonthAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/month
// Query params: year (required), month (required, 1-12), treatment, duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid year: %q", query.Get("year"))
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid month: %q", query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	duration := 0
	if durationStr := query.Get("duration"); durationStr != "" {
		parsed, err := strconv.Atoi(durationStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /availability/month - Invalid duration: %q", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getMonthAvailability.Request{
		Year:            year,
		Month:           month,
		TreatmentValue:  query.Get("treatment"),
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMonthAvailability.ErrInvalidMonth):
			h.logger.Warn("GET /availability/month - Invalid year/month: %d-%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getMonthAvailability.ErrTreatmentNotFound):
			h.logger.Warn("GET /availability/month - Treatment not found: %q", query.Get("treatment"))
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getMonthAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/month - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getMonthAvailability.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/month - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /availability/month - Failed to get availability: year=%d, month=%d, error=%v",
				year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/month - Availability retrieved: year=%d, month=%d", year, month)
	handlers.RespondJSON(w, http.StatusOK, result)
}
