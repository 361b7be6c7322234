package attendance

import (
	"math"
	"time"

	"github.com/progenxxx/hris-sub011/internal/domain/attendance"
)

// Policy holds the attendance accounting constants. They are injected rather
// than hard-coded so a future per-shift-type configuration only has to supply
// a different Policy.
type Policy struct {
	// ExpectedClockIn is the offset from midnight on the attendance date at
	// which work is expected to start. Applies to every shift type.
	ExpectedClockIn time.Duration

	// StandardWorkMinutes is the length of a full working day net of breaks.
	StandardWorkMinutes int

	// DefaultBreakMinutes is charged against every shift that has no valid
	// break punch pair, even a genuinely break-less one.
	DefaultBreakMinutes int
}

// DefaultPolicy is the company-wide rule set: work starts at 08:00, a full
// day is 480 minutes, and a one-hour break is assumed unless actual break
// punches prove otherwise.
func DefaultPolicy() Policy {
	return Policy{
		ExpectedClockIn:     8 * time.Hour,
		StandardWorkMinutes: 480,
		DefaultBreakMinutes: 60,
	}
}

// Shift is a normalized punch pair with the break minutes charged against it.
type Shift struct {
	Start        time.Time
	End          time.Time
	BreakMinutes int
}

// Normalize resolves the raw punches of a record into a shift. ok is false
// when the record has no clock-in or no usable shift end; no duration metrics
// can be computed for such rows.
func Normalize(rec attendance.Record, p Policy) (Shift, bool) {
	if rec.TimeIn == nil {
		return Shift{}, false
	}
	end := rec.ShiftEnd()
	if end == nil {
		return Shift{}, false
	}

	start := *rec.TimeIn
	shiftEnd := *end

	// Night-shift punches recorded with only a time of day land before the
	// clock-in; roll them over to the next day.
	if rec.IsNightshift && shiftEnd.Before(start) {
		shiftEnd = shiftEnd.Add(24 * time.Hour)
	}

	breakMinutes := p.DefaultBreakMinutes
	if rec.BreakIn != nil && rec.BreakOut != nil && rec.BreakOut.After(*rec.BreakIn) {
		breakMinutes = int(rec.BreakOut.Sub(*rec.BreakIn).Minutes())
	}

	return Shift{Start: start, End: shiftEnd, BreakMinutes: breakMinutes}, true
}

// Calculate derives late minutes, undertime minutes and hours worked for a
// record. It is a pure function: missing punches zero-fill the affected
// metrics instead of failing, and all outputs are non-negative.
func Calculate(rec attendance.Record, p Policy) attendance.Metrics {
	var m attendance.Metrics

	if rec.TimeIn == nil {
		return m
	}

	expected := expectedClockIn(rec.Date, p)
	// Whole elapsed minutes; an incomplete minute floors away, so 08:00:59
	// still counts as on time.
	if late := int(rec.TimeIn.Sub(expected).Minutes()); late > 0 {
		m.LateMinutes = late
	}

	shift, ok := Normalize(rec, p)
	if !ok {
		return m
	}

	total := int(shift.End.Sub(shift.Start).Minutes())
	net := total - shift.BreakMinutes
	if net < 0 {
		net = 0
	}

	if under := p.StandardWorkMinutes - net; under > 0 {
		m.UndertimeMinutes = under
	}
	m.HoursWorked = roundHours(float64(net) / 60)

	return m
}

// MetricsChanged reports whether recomputed metrics differ from the values
// stored on the record. Hours compare with an absolute tolerance of 0.01 so
// floating-point noise never counts as a change.
func MetricsChanged(rec attendance.Record, m attendance.Metrics) bool {
	return rec.LateMinutes != m.LateMinutes ||
		rec.UndertimeMinutes != m.UndertimeMinutes ||
		math.Abs(rec.HoursWorked-m.HoursWorked) > 0.01
}

func expectedClockIn(date time.Time, p Policy) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(p.ExpectedClockIn)
}

// roundHours rounds to two decimals, half up.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
