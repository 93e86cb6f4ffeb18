package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderUpdate is one element of an atomic list-order rewrite. FromOrder is
// the order the caller observed; the update is rejected with
// ErrOrderConflict if the stored order no longer matches.
type OrderUpdate struct {
	CaseID    uuid.UUID
	FromOrder int
	ToOrder   int
}

// Repository is the pluggable schedule store. Implementations must apply
// CompareAndSwapOrders atomically per (theatre, date): readers never observe
// a partially applied set of order updates.
type Repository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	// Update persists team, status and annotation changes. Theatre, date
	// and list order are not written by Update.
	Update(ctx context.Context, c *Case) error
	ListByTheatreDate(ctx context.Context, theatreID string, date time.Time) ([]*Case, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Case, error)
	ListByTheatre(ctx context.Context, theatreID string) ([]*Case, error)
	ListAll(ctx context.Context) ([]*Case, error)
	CompareAndSwapOrders(ctx context.Context, theatreID string, date time.Time, updates []OrderUpdate) error
}
