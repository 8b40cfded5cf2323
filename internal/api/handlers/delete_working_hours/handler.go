package delete_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	workinghoursService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours"
)

const (
	msgInvalidDayOfWeek = "ongeldige dag van de week, verwacht 0-6"
	msgRuleNotFound     = "geen werktijden ingesteld voor deze dag"
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

// Handle DELETE /api/v1/admin/working-hours/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("DELETE /admin/working-hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	if err := h.service.Deactivate(r.Context(), dayOfWeek); err != nil {
		switch {
		case errors.Is(err, workinghoursService.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/working-hours/{day} - Invalid day: %d", dayOfWeek)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, workinghoursService.ErrRuleNotFound):
			h.logger.Warn("DELETE /admin/working-hours/{day} - No rule for day: %d", dayOfWeek)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("DELETE /admin/working-hours/{day} - Failed to deactivate: day=%d, error=%v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/working-hours/{day} - Rules deactivated: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
