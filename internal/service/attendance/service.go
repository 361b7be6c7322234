package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/progenxxx/hris-sub011/internal/domain/attendance"
)

// txRunner runs a function inside a single database transaction. database.DB
// satisfies it; tests substitute a pass-through.
type txRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttendanceServiceImpl struct {
	db     txRunner
	repo   attendance.AttendanceRepository
	policy Policy
}

func NewAttendanceService(db txRunner, repo attendance.AttendanceRepository, policy Policy) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:     db,
		repo:   repo,
		policy: policy,
	}
}

// proposeFunc produces the updated row and a change preview for one record,
// or a nil preview when the row is already correct. It must not perform I/O;
// persisting a proposal is the driver's job.
type proposeFunc func(rec attendance.Record) (attendance.Record, *attendance.ChangePreview)

// Recalculate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recalculate(ctx context.Context, req attendance.BatchRequest) (attendance.BatchReport, error) {
	return s.run(ctx, "recalculate_metrics", req, s.proposeRecalculation)
}

// FixImported implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) FixImported(ctx context.Context, req attendance.BatchRequest) (attendance.BatchReport, error) {
	return s.run(ctx, "fix_imported", req, s.proposeFix)
}

func (s *AttendanceServiceImpl) proposeRecalculation(rec attendance.Record) (attendance.Record, *attendance.ChangePreview) {
	m := Calculate(rec, s.policy)
	if !MetricsChanged(rec, m) {
		return rec, nil
	}

	old := rec.Metrics()
	rec.LateMinutes = m.LateMinutes
	rec.UndertimeMinutes = m.UndertimeMinutes
	rec.HoursWorked = m.HoursWorked

	return rec, &attendance.ChangePreview{
		RecordID:   rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Old:        old,
		New:        m,
	}
}

func (s *AttendanceServiceImpl) proposeFix(rec attendance.Record) (attendance.Record, *attendance.ChangePreview) {
	fixed, repaired := ProposeRepair(rec)

	m := Calculate(fixed, s.policy)
	if !repaired && !MetricsChanged(fixed, m) {
		return rec, nil
	}

	old := rec.Metrics()
	fixed.LateMinutes = m.LateMinutes
	fixed.UndertimeMinutes = m.UndertimeMinutes
	fixed.HoursWorked = m.HoursWorked

	return fixed, &attendance.ChangePreview{
		RecordID:   fixed.ID,
		EmployeeID: fixed.EmployeeID,
		Date:       fixed.Date,
		Old:        old,
		New:        m,
		Repaired:   repaired,
	}
}

// run drives a batch: validate, count, iterate in chunks, propose per row,
// apply in live mode. Live runs execute inside one transaction so an
// interrupted batch persists nothing; dry runs never write at all.
func (s *AttendanceServiceImpl) run(ctx context.Context, job string, req attendance.BatchRequest, propose proposeFunc) (attendance.BatchReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchReport{}, err
	}

	log := slog.With("job", job, "run_id", uuid.NewString(), "dry_run", req.DryRun)

	total, err := s.repo.Count(ctx, req.Filter)
	if err != nil {
		return attendance.BatchReport{}, fmt.Errorf("count attendance rows: %w", err)
	}

	report := attendance.BatchReport{TotalRecords: total}
	log.Info("batch run starting", "total_records", total, "batch_size", req.BatchSize)

	batch := func(ctx context.Context) error {
		afterID := ""
		for {
			records, err := s.repo.ListChunk(ctx, req.Filter, afterID, req.BatchSize)
			if err != nil {
				return fmt.Errorf("list attendance chunk: %w", err)
			}
			if len(records) == 0 {
				return nil
			}

			for _, rec := range records {
				afterID = rec.ID
				report.Processed++

				updated, preview, rowErr := proposeSafely(propose, rec)
				if rowErr != nil {
					report.Errors++
					log.Error("row evaluation failed",
						"record_id", rec.ID,
						"employee_id", rec.EmployeeID,
						"error", rowErr)
					continue
				}
				if preview == nil {
					continue
				}

				report.Changed++
				if req.DryRun {
					report.Previews = append(report.Previews, *preview)
					log.Info("would update row",
						"record_id", preview.RecordID,
						"employee_id", preview.EmployeeID,
						"date", preview.Date.Format("2006-01-02"),
						"repaired", preview.Repaired,
						"old_late", preview.Old.LateMinutes, "new_late", preview.New.LateMinutes,
						"old_undertime", preview.Old.UndertimeMinutes, "new_undertime", preview.New.UndertimeMinutes,
						"old_hours", preview.Old.HoursWorked, "new_hours", preview.New.HoursWorked)
					continue
				}

				if err := s.apply(ctx, updated, preview.Repaired); err != nil {
					return err
				}
			}

			if len(records) < req.BatchSize {
				return nil
			}
		}
	}

	if req.DryRun {
		err = batch(ctx)
	} else {
		err = s.db.WithinTransaction(ctx, batch)
	}
	if err != nil {
		return report, err
	}

	log.Info("batch run finished",
		"processed", report.Processed,
		"changed", report.Changed,
		"errors", report.Errors)
	return report, nil
}

// apply persists one proposed row. Failures here are storage failures, not
// bad row data; they abort the batch and roll the transaction back.
func (s *AttendanceServiceImpl) apply(ctx context.Context, rec attendance.Record, repaired bool) error {
	if repaired {
		if err := s.repo.UpdateRepair(ctx, rec); err != nil {
			return fmt.Errorf("repair attendance %s: %w", rec.ID, err)
		}
		return nil
	}
	if err := s.repo.UpdateMetrics(ctx, rec); err != nil {
		return fmt.Errorf("update attendance metrics %s: %w", rec.ID, err)
	}
	return nil
}

// proposeSafely isolates one row's evaluation so unexpected data can never
// abort the batch: a panic becomes a counted row error.
func proposeSafely(propose proposeFunc, rec attendance.Record) (updated attendance.Record, preview *attendance.ChangePreview, err error) {
	defer func() {
		if p := recover(); p != nil {
			updated = rec
			preview = nil
			err = fmt.Errorf("row evaluation panicked: %v", p)
		}
	}()
	updated, preview = propose(rec)
	return updated, preview, nil
}
