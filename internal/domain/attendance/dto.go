package attendance

import (
	"time"
)

// Metrics holds the three derived fields owned by the calculator.
type Metrics struct {
	LateMinutes      int
	UndertimeMinutes int
	HoursWorked      float64
}

// Metrics returns the derived fields currently stored on the record.
func (r Record) Metrics() Metrics {
	return Metrics{
		LateMinutes:      r.LateMinutes,
		UndertimeMinutes: r.UndertimeMinutes,
		HoursWorked:      r.HoursWorked,
	}
}

// Filter selects the attendance rows a batch run operates on. All fields are
// optional; a nil filter field is not applied.
type Filter struct {
	EmployeeID *string
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
}

// Normalize applies the filter precedence rule: a single Date wins over a
// date range when both are given.
func (f *Filter) Normalize() {
	if f.Date != nil {
		f.StartDate = nil
		f.EndDate = nil
	}
}

// Validate rejects filters that must not touch any rows.
func (f Filter) Validate() error {
	if f.Date == nil && f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// BatchRequest is the invocation surface of the batch correction driver.
type BatchRequest struct {
	Filter    Filter
	DryRun    bool
	BatchSize int
}

const DefaultBatchSize = 100

// Validate checks the request and fills in the default batch size. BatchSize
// only bounds chunk reads; it never changes the outcome of a run.
func (r *BatchRequest) Validate() error {
	if r.BatchSize == 0 {
		r.BatchSize = DefaultBatchSize
	}
	if r.BatchSize < 0 {
		return ErrInvalidBatchSize
	}
	r.Filter.Normalize()
	return r.Filter.Validate()
}

// ChangePreview is the old and new state of one row a run changed or would
// change. Dry runs collect these instead of persisting.
type ChangePreview struct {
	RecordID   string
	EmployeeID string
	Date       time.Time
	Old        Metrics
	New        Metrics
	Repaired   bool // structural night-shift repair applied, not just metrics
}

// BatchReport summarizes a batch run.
type BatchReport struct {
	TotalRecords int64
	Processed    int
	Changed      int
	Errors       int
	Previews     []ChangePreview
}
