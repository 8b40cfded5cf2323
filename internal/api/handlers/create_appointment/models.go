package create_appointment

import (
	createAppointment "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Treatment string `json:"treatment"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		TreatmentValue: r.Treatment,
		Date:           r.Date,
		Time:           r.Time,
		ClientName:     r.Name,
		ClientEmail:    r.Email,
		ClientPhone:    r.Phone,
		Message:        r.Message,
	}
}
