package get_month_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Year < 2020 || req.Year > 2100 {
		return fmt.Errorf("%w: year must be in range 2020-2100, got %d", ErrInvalidMonth, req.Year)
	}

	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be in range 1-12, got %d", ErrInvalidMonth, req.Month)
	}

	return nil
}
