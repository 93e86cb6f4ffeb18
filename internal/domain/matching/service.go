package matching

import (
	"context"
	"fmt"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

// StaffSource is the read-only staff pool the matcher ranks over.
type StaffSource interface {
	ListStaff(ctx context.Context, limit, offset int) ([]*catalog.StaffMember, int, error)
	ListStaffByRole(ctx context.Context, role catalog.Role) ([]*catalog.StaffMember, error)
}

type Service struct {
	staff StaffSource
}

func NewService(staff StaffSource) *Service {
	return &Service{staff: staff}
}

// RankStaff ranks the staff pool for a caller, optionally restricted to one
// role.
func (s *Service) RankStaff(ctx context.Context, caller *Location, role catalog.Role) ([]Ranked, error) {
	var members []*catalog.StaffMember
	var err error
	if role != "" {
		members, err = s.staff.ListStaffByRole(ctx, role)
	} else {
		members, _, err = s.staff.ListStaff(ctx, 0, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("load staff pool: %w", err)
	}
	pool := make([]Candidate, 0, len(members))
	for _, m := range members {
		pool = append(pool, Candidate{
			ID:        m.ID,
			Name:      m.Name,
			Role:      string(m.Role),
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
			Rating:    m.Rating,
		})
	}
	return Rank(caller, pool), nil
}
