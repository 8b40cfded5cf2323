package create_appointment

// Request модель запроса на создание заявки
type Request struct {
	TreatmentValue string // машинное значение процедуры ("massage-60")
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	Message        string // опциональное сообщение клиента
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID              int64   `json:"id"`
	TreatmentValue  string  `json:"treatmentValue"`
	TreatmentLabel  string  `json:"treatmentLabel"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	ClientName      string  `json:"clientName"`
	Status          string  `json:"status"`
	CalendarEventID *string `json:"calendarEventId,omitempty"`
}
