package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("catalog entry not found")

type staffRepoMemory struct {
	mu    sync.RWMutex
	staff map[uuid.UUID]*StaffMember
}

// NewStaffRepoMemory returns an in-memory StaffRepository.
func NewStaffRepoMemory() StaffRepository {
	return &staffRepoMemory{staff: make(map[uuid.UUID]*StaffMember)}
}

func (r *staffRepoMemory) Create(_ context.Context, s *StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *staffRepoMemory) GetByID(_ context.Context, id uuid.UUID) (*StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.staff[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *staffRepoMemory) List(_ context.Context, limit, offset int) ([]*StaffMember, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*StaffMember, 0, len(r.staff))
	for _, s := range r.staff {
		cp := *s
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (r *staffRepoMemory) ListByRole(_ context.Context, role Role) ([]*StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*StaffMember
	for _, s := range r.staff {
		if s.Role == role {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type procedureRepoMemory struct {
	mu         sync.RWMutex
	procedures map[uuid.UUID]*Procedure
}

// NewProcedureRepoMemory returns an in-memory ProcedureRepository.
func NewProcedureRepoMemory() ProcedureRepository {
	return &procedureRepoMemory{procedures: make(map[uuid.UUID]*Procedure)}
}

func (r *procedureRepoMemory) Create(_ context.Context, p *Procedure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.procedures[p.ID] = &cp
	return nil
}

func (r *procedureRepoMemory) GetByID(_ context.Context, id uuid.UUID) (*Procedure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procedures[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *procedureRepoMemory) List(_ context.Context, limit, offset int) ([]*Procedure, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Procedure, 0, len(r.procedures))
	for _, p := range r.procedures {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (r *procedureRepoMemory) ListBySpecialty(_ context.Context, specialty string) ([]*Procedure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Procedure
	for _, p := range r.procedures {
		if p.Specialty == specialty {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
