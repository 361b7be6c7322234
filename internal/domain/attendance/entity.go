package attendance

import (
	"time"
)

// Source values recorded on a row to mark its provenance.
const (
	SourceImport      = "import"
	SourceManual      = "manual"
	SourceFixedImport = "fixed_import"
)

// Record is a single per-employee, per-day attendance row. Punch fields are
// pointers because biometric imports routinely miss one side of a pair.
// LateMinutes, UndertimeMinutes and HoursWorked are derived fields owned by
// the metrics calculator; nothing else writes them.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time // attendance day, no time component

	TimeIn   *time.Time
	TimeOut  *time.Time
	BreakIn  *time.Time
	BreakOut *time.Time

	// IsNightshift marks a shift whose end falls on the day after Date; the
	// logical clock-out is then NextDayTimeout, not TimeOut.
	IsNightshift   bool
	NextDayTimeout *time.Time

	LateMinutes      int
	UndertimeMinutes int
	HoursWorked      float64

	Source string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftEnd resolves the effective clock-out of the record: NextDayTimeout for
// night shifts when present, otherwise TimeOut. Nil means no usable shift end.
func (r Record) ShiftEnd() *time.Time {
	if r.IsNightshift && r.NextDayTimeout != nil {
		return r.NextDayTimeout
	}
	return r.TimeOut
}
