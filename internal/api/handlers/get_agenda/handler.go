package get_agenda

import (
	"net/http"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/agenda
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Agenda(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/agenda - Failed to get agenda: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/agenda - Retrieved %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
