package catalog

import (
	"context"

	"github.com/google/uuid"
)

type StaffRepository interface {
	Create(ctx context.Context, s *StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error)
	List(ctx context.Context, limit, offset int) ([]*StaffMember, int, error)
	ListByRole(ctx context.Context, role Role) ([]*StaffMember, error)
}

type ProcedureRepository interface {
	Create(ctx context.Context, p *Procedure) error
	GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error)
	List(ctx context.Context, limit, offset int) ([]*Procedure, int, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*Procedure, error)
}
