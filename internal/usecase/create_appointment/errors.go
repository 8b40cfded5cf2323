package create_appointment

import "errors"

var (
	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrInvalidTime возвращается при некорректном времени записи
	ErrInvalidTime = errors.New("invalid appointment time")

	// ErrSlotUnavailable возвращается, когда запрошенный слот уже занят.
	// Между показом слотов клиенту и отправкой формы календарь мог измениться
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrDayClosed возвращается, когда практика закрыта в запрошенную дату
	ErrDayClosed = errors.New("practice is closed on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamUnavailable возвращается, когда календарь недоступен
	ErrUpstreamUnavailable = errors.New("calendar upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
