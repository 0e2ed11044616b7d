/*
errors.go - Error types for the payroll engine

PURPOSE:
  One place for every error the package can return. Irregular numeric
  input (negative counts, missing captures) is NOT an error here - it
  is clamped or defaulted per the documented contract in types.go.
  Errors are reserved for records the engine cannot price at all.

PROPAGATION:
  A malformed employee never aborts the run. The batch runner records
  the failure on that employee's result and keeps going; aggregation
  sums only the successes and reports who was skipped.

SEE ALSO:
  - calendar.ErrInvalidDate: the only date-side failure
  - engine.go: Run and the per-employee result
*/
package payroll

import (
	"errors"
	"fmt"
)

// ErrMalformedEmployee is returned when a required employee field is
// missing or unusable. Use with errors.Is.
var ErrMalformedEmployee = errors.New("malformed employee record")

// MalformedEmployeeError identifies which record and field failed.
type MalformedEmployeeError struct {
	ID    EmployeeID
	Name  string
	Field string
}

func (e *MalformedEmployeeError) Error() string {
	who := string(e.ID)
	if who == "" {
		who = e.Name
	}
	if who == "" {
		who = "<unknown>"
	}
	return fmt.Sprintf("malformed employee record %q: bad %s", who, e.Field)
}

func (e *MalformedEmployeeError) Unwrap() error {
	return ErrMalformedEmployee
}
