package googlecalendar

import (
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// EventDateTime дата/время события в формате Google Calendar API.
// Для событий "на весь день" заполнено только Date
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Attendee участник события
type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Event событие Google Calendar (wire-модель API v3)
type Event struct {
	ID          string         `json:"id,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	ColorID     string         `json:"colorId,omitempty"`
	Status      string         `json:"status,omitempty"`
	Start       *EventDateTime `json:"start,omitempty"`
	End         *EventDateTime `json:"end,omitempty"`
	Attendees   []Attendee     `json:"attendees,omitempty"`
}

// eventList ответ events.list
type eventList struct {
	Items []Event `json:"items"`
}

// tokenResponse ответ OAuth2 token endpoint
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// serviceAccountKey JSON-ключ сервисного аккаунта Google
type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ToDomain конвертирует wire-событие в доменную модель
func (e *Event) ToDomain(calendarID string) domain.CalendarEvent {
	out := domain.CalendarEvent{
		ID:          e.ID,
		CalendarID:  calendarID,
		Summary:     e.Summary,
		Description: e.Description,
		ColorID:     e.ColorID,
	}

	if e.Start != nil {
		if e.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
				out.Start = t
			}
		} else if e.Start.Date != "" {
			out.AllDay = true
		}
	}

	if e.End != nil && e.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, e.End.DateTime); err == nil {
			out.End = t
		}
	}

	return out
}

// AppointmentEvent данные для создания события-приёма в календаре
type AppointmentEvent struct {
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	TreatmentName string
	Start         time.Time
	End           time.Time
	Message       string
}
