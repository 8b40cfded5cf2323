package debug_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
)

const (
	msgMissingDate         = "datum is verplicht"
	msgInvalidDate         = "ongeldige datum, verwacht formaat YYYY-MM-DD"
	msgInvalidMonth        = "ongeldige maand, verwacht 1-12"
	msgInvalidDuration     = "ongeldige behandelduur"
	msgCalendarUnavailable = "agenda is tijdelijk niet beschikbaar, probeer het later opnieuw"
)

// Handler диагностические маршруты движка доступности.
// Только для административного инструментария - отдает полную
// детализацию расчёта, включая названия событий календаря
type Handler struct {
	service AvailabilityService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service AvailabilityService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// HandleDay GET /api/v1/admin/debug/availability/day
// Query params: date (required, YYYY-MM-DD), duration
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.loc)
	if err != nil {
		h.logger.Warn("GET /admin/debug/availability/day - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	opts, ok := h.parseOptions(w, query.Get("duration"))
	if !ok {
		return
	}

	result, err := h.service.DebugDayAvailability(r.Context(), date, opts)
	if err != nil {
		h.respondServiceError(w, "GET /admin/debug/availability/day", err)
		return
	}

	h.logger.Info("GET /admin/debug/availability/day - Debug computed: date=%s", dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleMonth GET /api/v1/admin/debug/availability/month
// Query params: year (required), month (required, 1-12), duration
func (h *Handler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil || month < 1 || month > 12 {
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	opts, ok := h.parseOptions(w, query.Get("duration"))
	if !ok {
		return
	}

	result, err := h.service.DebugMonthAvailability(r.Context(), year, time.Month(month), opts)
	if err != nil {
		h.respondServiceError(w, "GET /admin/debug/availability/month", err)
		return
	}

	h.logger.Info("GET /admin/debug/availability/month - Debug computed: year=%d, month=%d", year, month)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) parseOptions(w http.ResponseWriter, durationStr string) (availability.Options, bool) {
	opts := availability.Options{BufferMinutes: -1}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return opts, false
		}
		opts.TreatmentDuration = duration
	}

	return opts, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)

	case errors.Is(err, availability.ErrUpstreamFetch):
		h.logger.Error("%s - Calendar unavailable: %v", route, err)
		handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

	default:
		h.logger.Error("%s - Failed to compute debug info: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
