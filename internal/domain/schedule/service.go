package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/theatreops/theatreops/internal/domain/catalog"
	"github.com/theatreops/theatreops/internal/domain/theatre"
	"github.com/theatreops/theatreops/internal/platform/metrics"
)

// PoolProvider supplies the read-only resource pools for a generation run.
type PoolProvider interface {
	Pools(ctx context.Context) (*catalog.Pools, error)
}

// StaffDirectory resolves staff by ID for reassignment commands.
type StaffDirectory interface {
	GetStaffMember(ctx context.Context, id uuid.UUID) (*catalog.StaffMember, error)
}

// Service is the engine's command and query surface. Reorder atomicity is
// delegated to the Repository; everything else is plain validation on top.
type Service struct {
	repo     Repository
	orders   *OrderManager
	filters  *Engine
	alloc    *Allocator
	registry *theatre.Registry
	pools    PoolProvider
	staff    StaffDirectory
	logger   zerolog.Logger
	metrics  *metrics.Collector
}

func NewService(repo Repository, orders *OrderManager, filters *Engine, alloc *Allocator,
	registry *theatre.Registry, pools PoolProvider, staff StaffDirectory,
	logger zerolog.Logger, m *metrics.Collector) *Service {
	return &Service{
		repo:     repo,
		orders:   orders,
		filters:  filters,
		alloc:    alloc,
		registry: registry,
		pools:    pools,
		staff:    staff,
		logger:   logger,
		metrics:  m,
	}
}

// -- Queries --

func (s *Service) CasesForDate(ctx context.Context, date time.Time) ([]*Case, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *Service) CasesForTheatre(ctx context.Context, theatreID string) ([]*Case, error) {
	return s.repo.ListByTheatre(ctx, theatreID)
}

func (s *Service) CasesForTheatreDate(ctx context.Context, theatreID string, date time.Time) ([]*Case, error) {
	return s.repo.ListByTheatreDate(ctx, theatreID, date)
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.repo.GetByID(ctx, id)
}

// Filter runs a conjunctive predicate set over the full store snapshot.
func (s *Service) Filter(ctx context.Context, f Filter) ([]*Case, error) {
	snapshot, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.filters.Apply(snapshot, f), nil
}

// -- Mutations --

// Reorder swaps the list orders of two cases on the same theatre-day.
func (s *Service) Reorder(ctx context.Context, caseA, caseB uuid.UUID) error {
	err := s.orders.SwapOrder(ctx, caseA, caseB)
	s.countReorder("swap", err)
	return err
}

// MoveCase moves a case to an arbitrary position in its theatre-day list.
func (s *Service) MoveCase(ctx context.Context, caseID uuid.UUID, position int) error {
	err := s.orders.MoveToPosition(ctx, caseID, position)
	s.countReorder("move", err)
	return err
}

func (s *Service) countReorder(kind string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	s.metrics.ReordersTotal.WithLabelValues(kind, outcome).Inc()
}

// ReassignStaff replaces the member assigned to one role on a case. The
// staff member must exist and hold the requested role; theatre, date and
// order are untouched.
func (s *Service) ReassignStaff(ctx context.Context, caseID uuid.UUID, role catalog.Role, staffID uuid.UUID) error {
	if !catalog.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %s", ErrAssignment, role)
	}
	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	member, err := s.staff.GetStaffMember(ctx, staffID)
	if err != nil {
		return fmt.Errorf("%w: staff member %s not found", ErrAssignment, staffID)
	}
	if member.Role != role {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrAssignment, member.Name, member.Role, role)
	}
	if member.Specialty != "" && member.Specialty != c.Specialty {
		return fmt.Errorf("%w: %s is bound to %s, case is %s", ErrAssignment, member.Name, member.Specialty, c.Specialty)
	}
	c.Team[role] = member.Name
	return s.repo.Update(ctx, c)
}

// SetStatus applies a lifecycle transition. Invalid targets and transitions
// out of terminal states are rejected with no state change.
func (s *Service) SetStatus(ctx context.Context, caseID uuid.UUID, to Status) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: unknown status %s", ErrInvalidTransition, to)
	}
	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	if !CanTransition(c.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
	}
	c.Status = to
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(to)).Inc()
	}
	return nil
}

// AnnotateCase updates the free-text notes on a case.
func (s *Service) AnnotateCase(ctx context.Context, caseID uuid.UUID, notes string) error {
	c, err := s.repo.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	c.Notes = notes
	return s.repo.Update(ctx, c)
}

// -- Generation --

// GenerateSchedule allocates cases for every theatre-day in [from, to] and
// persists them. The rng seed fully determines pool, procedure and tag
// selection, so the same seed over the same catalogs reproduces the same
// schedule. Per-theatre-day allocation failures are returned alongside the
// created cases; they never abort the batch.
func (s *Service) GenerateSchedule(ctx context.Context, from, to time.Time, seed int64) ([]*Case, []error, error) {
	pools, err := s.pools.Pools(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot resource pools: %w", err)
	}
	rng := rand.New(rand.NewSource(seed))
	cases, allocErrs := s.alloc.Generate(from, to, s.registry, pools, rng)

	for _, c := range cases {
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, allocErrs, fmt.Errorf("persist case %s: %w", c.ProcedureName, err)
		}
	}

	if s.metrics != nil {
		s.metrics.CasesGenerated.Add(float64(len(cases)))
		for _, e := range allocErrs {
			if ae, ok := e.(*AllocationError); ok {
				s.metrics.AllocationFailures.WithLabelValues(ae.TheatreID).Inc()
			}
		}
	}
	s.logger.Info().
		Int("cases", len(cases)).
		Int("skipped_theatre_days", len(allocErrs)).
		Int64("seed", seed).
		Time("from", from).
		Time("to", to).
		Msg("schedule generated")
	return cases, allocErrs, nil
}
