package datewindow

import (
	"fmt"
	"time"
)

// DateWindow month boundaries used to validate trip timestamps.
// + Start: month of the data, YYYY-MM
// + End: month right after Start, YYYY-MM
// Months are zero padded so the lexical order of the strings matches the chronological order.
type DateWindow struct {
	Start string
	End   string
	lower time.Time
	upper time.Time
}

// Resolve returns the window of the given month. On December the End rolls over to January of the next year.
// Month must be between 1 and 12.
func Resolve(year int, month int) DateWindow {
	start := fmt.Sprintf("%d-%02d", year, month)
	end := fmt.Sprintf("%d-%02d", year, month+1)
	if month == 12 {
		end = fmt.Sprintf("%d-01", year+1)
	}

	return DateWindow{
		Start: start,
		End:   end,
		lower: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		upper: time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Lower returns the first instant of the Start month
func (dw DateWindow) Lower() time.Time {
	return dw.lower
}

// Upper returns the first instant of the End month
func (dw DateWindow) Upper() time.Time {
	return dw.upper
}

// Contains returns true if ts is between Lower and Upper. Both bounds are inclusive, so a timestamp
// at exactly the first instant of the End month is kept.
func (dw DateWindow) Contains(ts time.Time) bool {
	return !ts.Before(dw.lower) && !ts.After(dw.upper)
}

// String returns the window with its inclusive bounds, [Start-01, End-01]
func (dw DateWindow) String() string {
	return fmt.Sprintf("[%s-01, %s-01]", dw.Start, dw.End)
}
