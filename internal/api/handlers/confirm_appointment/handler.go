package confirm_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	appointmentsService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ongeldig afspraaknummer"
	msgAppointmentNotFound  = "afspraak niet gevonden"
	msgCannotConfirm        = "afspraak kan niet bevestigd worden"
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

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrCannotConfirm):
			h.logger.Warn("PATCH /admin/appointments/{id}/confirm - Cannot confirm: id=%d", id)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/confirm - Failed to confirm: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/confirm - Appointment confirmed: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
