package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo is the in-memory Repository. A single RWMutex guards the case
// map; in addition each (theatre, date) key has its own writer lock so
// reorder operations on different theatre-days do not serialize against
// each other while waiting to validate.
type memoryRepo struct {
	mu    sync.RWMutex
	cases map[uuid.UUID]*Case

	dayMu    sync.Mutex
	dayLocks map[string]*sync.Mutex
}

// NewRepoMemory returns an empty in-memory schedule store.
func NewRepoMemory() Repository {
	return &memoryRepo{
		cases:    make(map[uuid.UUID]*Case),
		dayLocks: make(map[string]*sync.Mutex),
	}
}

func dayKey(theatreID string, date time.Time) string {
	return theatreID + "|" + DayOf(date).Format("2006-01-02")
}

func (r *memoryRepo) dayLock(theatreID string, date time.Time) *sync.Mutex {
	r.dayMu.Lock()
	defer r.dayMu.Unlock()
	key := dayKey(theatreID, date)
	l, ok := r.dayLocks[key]
	if !ok {
		l = &sync.Mutex{}
		r.dayLocks[key] = l
	}
	return l
}

func (r *memoryRepo) Create(_ context.Context, c *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, exists := r.cases[c.ID]; exists {
		return fmt.Errorf("case %s already exists", c.ID)
	}
	now := time.Now()
	c.Date = DayOf(c.Date)
	c.CreatedAt = now
	c.UpdatedAt = now
	r.cases[c.ID] = c.Clone()
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cases[id]
	if !ok {
		return nil, ErrCaseNotFound
	}
	return c.Clone(), nil
}

func (r *memoryRepo) Update(_ context.Context, c *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.cases[c.ID]
	if !ok {
		return ErrCaseNotFound
	}
	// Theatre, date and order are owned by creation and the order
	// operations respectively.
	update := c.Clone()
	update.TheatreID = stored.TheatreID
	update.Date = stored.Date
	update.ListOrder = stored.ListOrder
	update.CreatedAt = stored.CreatedAt
	update.UpdatedAt = time.Now()
	r.cases[c.ID] = update
	return nil
}

func (r *memoryRepo) list(match func(*Case) bool) []*Case {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Case
	for _, c := range r.cases {
		if match(c) {
			out = append(out, c.Clone())
		}
	}
	sortCases(out)
	return out
}

func (r *memoryRepo) ListByTheatreDate(_ context.Context, theatreID string, date time.Time) ([]*Case, error) {
	day := DayOf(date)
	return r.list(func(c *Case) bool {
		return c.TheatreID == theatreID && c.Date.Equal(day)
	}), nil
}

func (r *memoryRepo) ListByDate(_ context.Context, date time.Time) ([]*Case, error) {
	day := DayOf(date)
	return r.list(func(c *Case) bool { return c.Date.Equal(day) }), nil
}

func (r *memoryRepo) ListByTheatre(_ context.Context, theatreID string) ([]*Case, error) {
	return r.list(func(c *Case) bool { return c.TheatreID == theatreID }), nil
}

func (r *memoryRepo) ListAll(_ context.Context) ([]*Case, error) {
	return r.list(func(*Case) bool { return true }), nil
}

func (r *memoryRepo) CompareAndSwapOrders(_ context.Context, theatreID string, date time.Time, updates []OrderUpdate) error {
	lock := r.dayLock(theatreID, date)
	lock.Lock()
	defer lock.Unlock()

	day := DayOf(date)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate everything before touching anything: the whole batch
	// applies or none of it does.
	for _, u := range updates {
		c, ok := r.cases[u.CaseID]
		if !ok {
			return ErrCaseNotFound
		}
		if c.TheatreID != theatreID || !c.Date.Equal(day) {
			return ErrInvalidReorder
		}
		if c.ListOrder != u.FromOrder {
			return ErrOrderConflict
		}
	}
	now := time.Now()
	for _, u := range updates {
		r.cases[u.CaseID].ListOrder = u.ToOrder
		r.cases[u.CaseID].UpdatedAt = now
	}
	return nil
}

// sortCases orders a result set by date, then theatre, then list order —
// the stable secondary sort every query surface relies on.
func sortCases(cases []*Case) {
	sort.Slice(cases, func(i, j int) bool {
		a, b := cases[i], cases[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TheatreID != b.TheatreID {
			return a.TheatreID < b.TheatreID
		}
		return a.ListOrder < b.ListOrder
	})
}
