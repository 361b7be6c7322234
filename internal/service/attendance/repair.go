package attendance

import (
	"time"

	"github.com/progenxxx/hris-sub011/internal/domain/attendance"
)

// ProposeRepair returns a copy of rec with structural night-shift
// inconsistencies fixed, and reports whether anything was repaired. It never
// mutates its input; applying the proposal is the caller's decision.
//
// Two inconsistencies are known from historical imports:
//   - next_day_timeout populated on a row not flagged as a night shift
//   - a night shift whose clock-out was imported into time_out instead of
//     next_day_timeout
func ProposeRepair(rec attendance.Record) (attendance.Record, bool) {
	repaired := false

	if rec.NextDayTimeout != nil && !rec.IsNightshift {
		rec.IsNightshift = true
		repaired = true
	}

	if rec.IsNightshift && rec.TimeOut != nil && rec.NextDayTimeout == nil {
		nextDay := rec.Date.AddDate(0, 0, 1)
		out := *rec.TimeOut
		moved := time.Date(
			nextDay.Year(), nextDay.Month(), nextDay.Day(),
			out.Hour(), out.Minute(), out.Second(), 0,
			out.Location(),
		)
		rec.NextDayTimeout = &moved
		rec.TimeOut = nil
		rec.Source = attendance.SourceFixedImport
		repaired = true
	}

	return rec, repaired
}
