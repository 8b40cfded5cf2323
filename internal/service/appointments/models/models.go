package models

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными заявки
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	TreatmentValue  *string `json:"treatmentValue,omitempty"`
	TreatmentLabel  *string `json:"treatmentLabel,omitempty"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM
	DurationMinutes int     `json:"durationMinutes"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone string  `json:"clientPhone"`
	Message     *string `json:"message,omitempty"`

	Status           string     `json:"status"`
	TransferredToCMS bool       `json:"transferredToCms"`
	TransferredAt    *time.Time `json:"transferredAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// AgendaResponse ответ со списком заявок для страницы агенды
type AgendaResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// TreatmentResponse процедура для формы бронирования
type TreatmentResponse struct {
	Value           string   `json:"value"`
	Label           string   `json:"label"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// TreatmentListResponse ответ со списком процедур
type TreatmentListResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:               a.ID,
		Date:             a.AppointmentDate.Format(domain.DateFormat),
		Time:             a.AppointmentTime.String(),
		DurationMinutes:  a.DurationMinutes,
		ClientName:       a.ClientName,
		ClientEmail:      a.ClientEmail,
		ClientPhone:      a.ClientPhone,
		Message:          a.Message,
		Status:           string(a.Status),
		TransferredToCMS: a.TransferredToCMS,
		TransferredAt:    a.TransferredAt,
		CreatedAt:        a.CreatedAt,
	}
}

// FromDomainAgenda конвертирует список заявок с процедурами в DTO
func FromDomainAgenda(appts []*domain.AppointmentWithTreatment) *AgendaResponse {
	out := &AgendaResponse{Appointments: make([]AppointmentResponse, 0, len(appts))}
	for _, a := range appts {
		resp := FromDomainAppointment(&a.Appointment)
		if resp == nil {
			continue
		}
		resp.TreatmentValue = a.TreatmentValue
		resp.TreatmentLabel = a.TreatmentLabel
		out.Appointments = append(out.Appointments, *resp)
	}
	return out
}

// FromDomainTreatments конвертирует список процедур в DTO
func FromDomainTreatments(treatments []*domain.Treatment) *TreatmentListResponse {
	out := &TreatmentListResponse{Treatments: make([]TreatmentResponse, 0, len(treatments))}
	for _, t := range treatments {
		if t == nil {
			continue
		}
		out.Treatments = append(out.Treatments, TreatmentResponse{
			Value:           t.Value,
			Label:           t.Label,
			DurationMinutes: t.DurationMinutes,
			Price:           t.Price,
		})
	}
	return out
}
