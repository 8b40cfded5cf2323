package create_appointment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
	createAppointment "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidBody         = "ongeldig verzoek"
	msgInvalidInput        = "controleer de ingevulde gegevens"
	msgInvalidDate         = "ongeldige datum, verwacht formaat YYYY-MM-DD"
	msgInvalidTime         = "ongeldige tijd, verwacht formaat HH:MM"
	msgTreatmentNotFound   = "behandeling niet gevonden"
	msgSlotUnavailable     = "dit tijdstip is helaas net bezet, kies een ander moment"
	msgDayClosed           = "de praktijk is gesloten op deze datum"
	msgCalendarUnavailable = "agenda is tijdelijk niet beschikbaar, probeer het later opnieuw"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidTime):
			h.logger.Warn("POST /appointments - Invalid time: %q", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrTreatmentNotFound):
			h.logger.Warn("POST /appointments - Treatment not found: %q", req.Treatment)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrDayClosed):
			h.logger.Warn("POST /appointments - Day closed: date=%s", req.Date)
			handlers.RespondConflict(w, msgDayClosed)

		case errors.Is(err, createAppointment.ErrUpstreamUnavailable):
			h.logger.Error("POST /appointments - Calendar unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, date=%s, time=%s",
		result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
