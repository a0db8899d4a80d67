package ledger

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when a withdrawal would drive the current
// balance negative. No state changes when it is returned.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ValidationError reports missing or malformed input. The ledger never
// mutates state when returning one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field, value string) *ValidationError {
	if value == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}
