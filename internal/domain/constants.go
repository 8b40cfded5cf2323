package domain

// Default booking rule values
const (
	DefaultSlotIntervalMinutes    = 15 // кадентность генерации слотов
	DefaultBufferMinutes          = 15 // пауза между приёмами
	DefaultTreatmentDuration      = 60
	DefaultQuickSlotCount         = 3
	DefaultQuickPickHorizonMonths = 2
)

// Business validation constants
const (
	MinTreatmentDurationMinutes = 5
	MaxTreatmentDurationMinutes = 240
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MaxQuickSlotCount           = 10
	MaxMessageLength            = 1000
)

// Calendar event conventions (Google Calendar colorId values)
const (
	BlockedColorID     = "8" // красный - заблокированное время
	AppointmentColorID = "1"
)

// Event classification vocabularies (defaults, overridable via config)
var (
	// MarkerKeyword summary-маркер продления рабочих часов ("VRIJ"-события)
	MarkerKeyword = "VRIJ"

	// PersonalKeywords признаки личных событий - блокируют слот без буфера
	PersonalKeywords = []string{"privé", "prive", "personal", "private", "eigen"}

	// AdminBlockKeywords признаки административной блокировки времени
	AdminBlockKeywords = []string{"blocked", "unavailable"}

	// AdminBlockPrefix префикс summary для заблокированного времени
	AdminBlockPrefix = "🚫"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// PracticeTimezone таймзона практики; все вычисления доступности
// выполняются в ней, независимо от таймзоны процесса
const PracticeTimezone = "Europe/Amsterdam"
