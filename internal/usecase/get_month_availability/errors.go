package get_month_availability

import "errors"

var (
	// ErrInvalidMonth возвращается при некорректном месяце или годе
	ErrInvalidMonth = errors.New("invalid year or month")

	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = errors.New("treatment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamUnavailable возвращается, когда календарь недоступен
	ErrUpstreamUnavailable = errors.New("calendar upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
