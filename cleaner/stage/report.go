package stage

import (
	"fmt"
	"sort"
	"strings"
)

// Name of a cleaning stage
type Name string

const (
	Imputation Name = "imputation"
	Integrity  Name = "integrity"
	Features   Name = "features"
	Inferred   Name = "inferred"
)

// Report summary of a stage execution
// + RowsIn: rows received by the stage
// + RowsOut: rows returned by the stage
// + Reasons: amount of rows per reason. Filters count each violated constraint, so a row dropped for two
// reasons is counted twice. Imputation counts filled values per column.
type Report struct {
	Stage   Name
	RowsIn  int
	RowsOut int
	Reasons map[string]int
}

func NewReport(stage Name, rowsIn int) *Report {
	return &Report{
		Stage:   stage,
		RowsIn:  rowsIn,
		Reasons: make(map[string]int),
	}
}

// Add increments the counter of a reason
func (r *Report) Add(reason string) {
	r.Reasons[reason]++
}

// Dropped returns the amount of rows removed by the stage
func (r *Report) Dropped() int {
	return r.RowsIn - r.RowsOut
}

func (r *Report) String() string {
	reasons := make([]string, 0, len(r.Reasons))
	for reason, count := range r.Reasons {
		reasons = append(reasons, fmt.Sprintf("%s=%v", reason, count))
	}
	sort.Strings(reasons)

	return fmt.Sprintf("[stage: %s] rows in: %v, rows out: %v, dropped: %v, reasons: {%s}",
		r.Stage, r.RowsIn, r.RowsOut, r.Dropped(), strings.Join(reasons, ", "))
}
