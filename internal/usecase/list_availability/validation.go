package list_availability

import (
	"fmt"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, string(req.Type))
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	return nil
}
