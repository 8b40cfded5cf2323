package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrUpstreamFetch возвращается, когда не удалось прочитать события календаря.
	// Ошибка шлюза никогда не маскируется пустым списком слотов -
	// "нет доступности" и "не удалось определить доступность" различимы
	ErrUpstreamFetch = errors.New("availability: failed to fetch calendar events")

	// ErrRuleStore возвращается при ошибке чтения правил рабочих часов
	ErrRuleStore = errors.New("availability: failed to read working hours rules")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
