package get_quick_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	getQuickSlots "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_quick_slots"
)

const (
	msgInvalidDuration     = "ongeldige behandelduur"
	msgInvalidCount        = "ongeldig aantal"
	msgTreatmentNotFound   = "behandeling niet gevonden"
	msgCalendarUnavailable = "agenda is tijdelijk niet beschikbaar, probeer het later opnieuw"
)

type Handler struct {
	useCase GetQuickSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetQuickSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/quick
// Query params: treatment, duration, count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	duration := 0
	if durationStr := query.Get("duration"); durationStr != "" {
		parsed, err := strconv.Atoi(durationStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /availability/quick - Invalid duration: %q", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		duration = parsed
	}

	count := 0
	if countStr := query.Get("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /availability/quick - Invalid count: %q", countStr)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		count = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getQuickSlots.Request{
		TreatmentValue:  query.Get("treatment"),
		DurationMinutes: duration,
		Count:           count,
	})
	if err != nil {
		switch {
		case errors.Is(err, getQuickSlots.ErrTreatmentNotFound):
			h.logger.Warn("GET /availability/quick - Treatment not found: %q", query.Get("treatment"))
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getQuickSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/quick - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getQuickSlots.ErrUpstreamUnavailable):
			h.logger.Error("GET /availability/quick - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /availability/quick - Failed to find slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/quick - Found %d quick slots", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
