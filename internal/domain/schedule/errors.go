package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the scheduling engine.
var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrInvalidReorder    = errors.New("cases are not on the same theatre-day")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrAssignment        = errors.New("staff member is not eligible for role")
	ErrOrderConflict     = errors.New("list order changed concurrently")
	ErrBadPosition       = errors.New("target position out of range")
)

// AllocationError reports that one theatre-day could not be populated. The
// day is skipped entirely; generation of the remaining theatre-days
// continues.
type AllocationError struct {
	TheatreID string
	Date      time.Time
	Reason    string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation failed for %s on %s: %s",
		e.TheatreID, e.Date.Format("2006-01-02"), e.Reason)
}
