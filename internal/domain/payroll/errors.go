package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotFound         = errors.New("payroll entry not found")
	ErrDuplicatePeriod       = errors.New("payroll entry already exists for this employee and period")
	ErrCannotEditEntry       = errors.New("payroll entry is not editable in its current status")
	ErrCannotDeletePaidEntry = errors.New("cannot delete a paid payroll entry")
	ErrVersionConflict       = errors.New("payroll entry was modified concurrently")
	ErrPaymentFailed         = errors.New("payment processing failed")
)

// TransitionError reports an illegal lifecycle transition. It carries the
// attempted operation and the entry's status at the time of the attempt.
type TransitionError struct {
	Op     string
	Status PayrollStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a payroll entry with status %q", e.Op, e.Status)
}

// NewTransitionError builds a TransitionError for an operation rejected in
// the given status.
func NewTransitionError(op string, status PayrollStatus) *TransitionError {
	return &TransitionError{Op: op, Status: status}
}
