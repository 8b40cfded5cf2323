package domain

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a client appointment in the system.
// The external calendar remains the source of truth for availability;
// the database row is the booking ledger shown on the agenda page.
type Appointment struct {
	ID              int64
	TreatmentID     *int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	DurationMinutes int

	ClientName  string
	ClientEmail string
	ClientPhone string
	Message     *string

	Status                AppointmentStatus
	GoogleCalendarEventID *string

	// Агенда практики ведется во внешней CMS - администратор переносит
	// заявки вручную и отмечает перенесенные
	TransferredToCMS bool
	TransferredAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the appointment can be confirmed
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// EndTime returns the appointment end as wall-clock time
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.AppointmentTime.AddMinutes(a.DurationMinutes)
}

// AppointmentWithTreatment appointment joined with its treatment for agenda listing
type AppointmentWithTreatment struct {
	Appointment
	TreatmentLabel *string
	TreatmentValue *string
}
