package workinghours

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило для дня недели не найдено
	ErrRuleNotFound = errors.New("working hours rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
