package get_working_hours

import (
	"net/http"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
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

// Handle GET /api/v1/admin/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/working-hours - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/working-hours - Retrieved %d rules", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
