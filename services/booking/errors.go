package booking

import (
	"fmt"

	"carebook/models"
)

// ValidationError rejects a creation request with a field- or date-specific
// reason. It is user-facing and never silently defaulted over.
type ValidationError struct {
	Field   string // field that failed, or "dates" for a dated failure
	Date    string // set when the failure concerns one calendar date
	Message string
}

func (e *ValidationError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("%s: %s", e.Date, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewDateError marks one calendar date of a multi-date request as failing.
func NewDateError(date, msg string) *ValidationError {
	return &ValidationError{Field: "dates", Date: date, Message: msg}
}

// StateError rejects a transition the current status does not permit. The
// attempted operation has no partial effect.
type StateError struct {
	BookingID string
	Status    models.BookingStatus
	Op        string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("booking %s: cannot %s while %s", e.BookingID, e.Op, e.Status)
}
