package attendance

import (
	"errors"
	"testing"
	"time"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestFilterNormalize_DateWinsOverRange(t *testing.T) {
	f := Filter{
		Date:      date("2024-03-05"),
		StartDate: date("2024-03-01"),
		EndDate:   date("2024-03-31"),
	}
	f.Normalize()
	if f.StartDate != nil || f.EndDate != nil {
		t.Errorf("Normalize() kept range %v-%v, want nil", f.StartDate, f.EndDate)
	}
	if f.Date == nil {
		t.Error("Normalize() dropped Date")
	}
}

func TestFilterValidate(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   error
	}{
		{"empty", Filter{}, nil},
		{"valid range", Filter{StartDate: date("2024-03-01"), EndDate: date("2024-03-31")}, nil},
		{"single-day range", Filter{StartDate: date("2024-03-01"), EndDate: date("2024-03-01")}, nil},
		{"open-ended start", Filter{StartDate: date("2024-03-01")}, nil},
		{"open-ended end", Filter{EndDate: date("2024-03-31")}, nil},
		{"end before start", Filter{StartDate: date("2024-03-31"), EndDate: date("2024-03-01")}, ErrInvalidDateRange},
	}
	for _, c := range cases {
		if got := c.filter.Validate(); !errors.Is(got, c.want) {
			t.Errorf("%s: Validate() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestBatchRequestValidate_Defaults(t *testing.T) {
	req := BatchRequest{}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if req.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", req.BatchSize, DefaultBatchSize)
	}

	negative := BatchRequest{BatchSize: -1}
	if err := negative.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
		t.Errorf("Validate() = %v, want ErrInvalidBatchSize", err)
	}
}

func TestRecordShiftEnd(t *testing.T) {
	out := date("2024-01-01")
	next := date("2024-01-02")

	day := Record{TimeOut: out}
	if got := day.ShiftEnd(); got != out {
		t.Errorf("day shift end = %v, want time_out", got)
	}

	night := Record{IsNightshift: true, TimeOut: out, NextDayTimeout: next}
	if got := night.ShiftEnd(); got != next {
		t.Errorf("night shift end = %v, want next_day_timeout", got)
	}

	nightNoNext := Record{IsNightshift: true, TimeOut: out}
	if got := nightNoNext.ShiftEnd(); got != out {
		t.Errorf("night shift without next_day_timeout = %v, want time_out", got)
	}

	if got := (Record{}).ShiftEnd(); got != nil {
		t.Errorf("empty record shift end = %v, want nil", got)
	}
}
