package googlecalendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Google Calendar API
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrAuth возвращается при ошибке получения access token сервисного аккаунта
	ErrAuth = errors.New("googlecalendar client: authentication failed")

	// ErrEventNotFound возвращается, когда событие не найдено в календаре
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrAllCalendarsFailed возвращается, когда не удалось прочитать ни один календарь.
	// Частичные сбои деградируют мягко (календарь считается пустым), полный сбой
	// должен быть наблюдаем вызывающей стороной, а не маскироваться пустым списком
	ErrAllCalendarsFailed = errors.New("googlecalendar client: all calendars failed to fetch")
)
