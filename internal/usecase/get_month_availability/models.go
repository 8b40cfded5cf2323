package get_month_availability

// Request модель запроса доступности месяца
type Request struct {
	Year            int
	Month           int    // 1-12
	TreatmentValue  string // машинное значение процедуры; пустое = длительность по умолчанию
	DurationMinutes int    // явная длительность; 0 = взять из процедуры или по умолчанию
}

// Response модель ответа: сетка календаря месяца
type Response struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	MonthName    string          `json:"monthName"` // голландское название месяца
	Days         []Day           `json:"days"`      // 42 ячейки, сетка с понедельника
	Availability map[string]bool `json:"availability"`
}

// Day ячейка сетки календаря
type Day struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Day             int    `json:"day"`
	IsCurrentMonth  bool   `json:"isCurrentMonth"`
	IsPastDate      bool   `json:"isPastDate"`
	IsWeekend       bool   `json:"isWeekend"`
	IsToday         bool   `json:"isToday"`
	HasAvailability bool   `json:"hasAvailability"`
}
