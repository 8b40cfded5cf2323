package update_working_hours

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	workinghoursService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours/models"
)

const (
	msgInvalidDayOfWeek = "ongeldige dag van de week, verwacht 0-6"
	msgInvalidBody      = "ongeldig verzoek"
	msgInvalidInput     = "controleer de ingevulde tijden"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/working-hours/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /admin/working-hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpsertRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /admin/working-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.DayOfWeek = dayOfWeek

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workinghoursService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/working-hours/{day} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/working-hours/{day} - Failed to upsert rule: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/working-hours/{day} - Rule saved: day=%d, %s-%s",
		result.DayOfWeek, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
