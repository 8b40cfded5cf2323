package get_quick_slots

// Request модель запроса быстрых вариантов записи
type Request struct {
	TreatmentValue  string // машинное значение процедуры; пустое = длительность по умолчанию
	DurationMinutes int    // явная длительность; 0 = взять из процедуры или по умолчанию
	Count           int    // количество вариантов; 0 = по умолчанию
}

// Response модель ответа со списком быстрых вариантов
type Response struct {
	Slots []QuickSlot `json:"slots"`
}

// QuickSlot один быстрый вариант записи
type QuickSlot struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH:MM
	Label string `json:"label"`
}
