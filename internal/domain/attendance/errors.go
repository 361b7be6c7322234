package attendance

import "errors"

// Attendance batch-correction domain errors
var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrInvalidBatchSize = errors.New("batch size must be greater than zero")
)
