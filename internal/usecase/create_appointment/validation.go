package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.TreatmentValue) == "" {
		return fmt.Errorf("%w: treatment is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if !validEmail(req.ClientEmail) {
		return fmt.Errorf("%w: client email is invalid", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	if len(req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

// parseDateTime парсит дату и время запроса
func parseDateTime(req *Request, loc *time.Location) (time.Time, types.TimeString, error) {
	if req.Date == "" {
		return time.Time{}, "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidDate, req.Date)
	}

	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: time must be in HH:MM format, got %q", ErrInvalidTime, req.Time)
	}

	return date, slotTime, nil
}

// validEmail проверяет минимальную корректность email без RFC-полноты:
// непустые локальная часть и домен с точкой
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	dom := email[at+1:]
	dot := strings.LastIndex(dom, ".")
	return dot > 0 && dot < len(dom)-1
}
