package get_day_availability

import (
	"fmt"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// parseDate парсит и валидирует дату запроса
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidDate, raw)
	}

	return date, nil
}
