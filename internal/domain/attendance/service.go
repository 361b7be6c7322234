package attendance

import (
	"context"
)

// AttendanceService defines the batch correction operations run by operators.
type AttendanceService interface {
	// Recalculate recomputes derived metrics for every row matching the
	// request filter and persists rows whose values changed (live mode) or
	// reports what would change (dry run).
	Recalculate(ctx context.Context, req BatchRequest) (BatchReport, error)

	// FixImported repairs structurally inconsistent night-shift rows left by
	// imports, then recomputes metrics, with the same dry-run semantics as
	// Recalculate.
	FixImported(ctx context.Context, req BatchRequest) (BatchReport, error)
}
