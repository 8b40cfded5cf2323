package get_day_availability

// Request модель запроса доступности одного дня
type Request struct {
	Date            string // YYYY-MM-DD
	TreatmentValue  string // машинное значение процедуры; пустое = длительность по умолчанию
	DurationMinutes int    // явная длительность; 0 = взять из процедуры или по умолчанию
}

// Response модель ответа со слотами дня
type Response struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Slots  []Slot `json:"slots"`
}

// Slot один слот дня с вердиктом доступности
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
