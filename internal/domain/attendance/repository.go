package attendance

import (
	"context"
)

// AttendanceRepository defines data access for attendance rows as the batch
// correction driver needs them. Listing is keyset-paginated so a run never
// holds more than one chunk in memory.
type AttendanceRepository interface {
	// Count returns how many rows match the filter.
	Count(ctx context.Context, filter Filter) (int64, error)

	// ListChunk returns up to limit rows matching the filter with id greater
	// than afterID, ordered by id. An empty afterID starts from the beginning.
	ListChunk(ctx context.Context, filter Filter, afterID string, limit int) ([]Record, error)

	// UpdateMetrics persists the derived fields of a record and bumps
	// updated_at.
	UpdateMetrics(ctx context.Context, rec Record) error

	// UpdateRepair persists a structural repair: night-shift flag, punch
	// fields, source and derived fields, bumping updated_at.
	UpdateRepair(ctx context.Context, rec Record) error
}
