package transfer_appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	appointmentsService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ongeldig afspraaknummer"
	msgInvalidBody          = "ongeldig verzoek"
	msgAppointmentNotFound  = "afspraak niet gevonden"
)

// TransferRequest HTTP request model
type TransferRequest struct {
	Transferred *bool `json:"transferred"` // nil = true
}

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

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/transfer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/appointments/{id}/transfer - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	transferred := true
	if r.Body != nil && r.ContentLength != 0 {
		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn("PATCH /admin/appointments/{id}/transfer - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
		if req.Transferred != nil {
			transferred = *req.Transferred
		}
	}

	result, err := h.service.SetTransferred(r.Context(), id, transferred)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/transfer - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/transfer - Failed to update: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/transfer - Appointment updated: id=%d, transferred=%v", id, transferred)
	handlers.RespondJSON(w, http.StatusOK, result)
}
