package stage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrFatalAssumptionViolation = errors.New("fatal assumption violation")

// NullCountError returned when nulls remain after imputation. Counts has the amount of nulls per column.
type NullCountError struct {
	Counts map[string]int
}

func (e *NullCountError) Error() string {
	columns := make([]string, 0, len(e.Counts))
	for column, count := range e.Counts {
		columns = append(columns, fmt.Sprintf("%s: %v", column, count))
	}
	sort.Strings(columns)

	return fmt.Sprintf("%s: columns with missing values found after value imputation {%s}",
		ErrFatalAssumptionViolation, strings.Join(columns, ", "))
}

func (e *NullCountError) Unwrap() error {
	return ErrFatalAssumptionViolation
}
