package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EquipmentTags and RequirementTags hold the specialty-specific tag catalogs
// sampled during schedule generation. They are keyed by specialty name.
var (
	EquipmentTags = map[string][]string{
		"Orthopaedics":    {"Image intensifier", "Tourniquet", "Arthroscopy stack", "Traction table", "Cement mixer"},
		"General Surgery": {"Laparoscopic stack", "Harmonic scalpel", "Stapler gun", "Headlight"},
		"ENT":             {"Microscope", "Microdebrider", "Nerve monitor", "Rigid endoscope"},
		"Urology":         {"Cystoscope", "Laser console", "Irrigation tower"},
	}
	RequirementTags = map[string][]string{
		"Orthopaedics":    {"Cell salvage", "Spinal anaesthesia", "HDU bed post-op", "Implant rep present"},
		"General Surgery": {"Bowel prep confirmed", "Stoma nurse review", "Group and save"},
		"ENT":             {"Throat pack count", "Facial nerve monitoring"},
		"Urology":         {"Antibiotic prophylaxis", "Catheter pathway"},
	}
)

// Service exposes the read-mostly staff and procedure catalogs.
type Service struct {
	staff      StaffRepository
	procedures ProcedureRepository
}

func NewService(staff StaffRepository, procedures ProcedureRepository) *Service {
	return &Service{staff: staff, procedures: procedures}
}

func (s *Service) CreateStaffMember(ctx context.Context, m *StaffMember) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidRole(m.Role) {
		return fmt.Errorf("invalid role: %s", m.Role)
	}
	return s.staff.Create(ctx, m)
}

func (s *Service) GetStaffMember(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*StaffMember, int, error) {
	return s.staff.List(ctx, limit, offset)
}

func (s *Service) ListStaffByRole(ctx context.Context, role Role) ([]*StaffMember, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return s.staff.ListByRole(ctx, role)
}

var validComplexities = map[Complexity]bool{
	ComplexityMinor: true, ComplexityModerate: true,
	ComplexityMajor: true, ComplexityComplex: true,
}

func (s *Service) CreateProcedure(ctx context.Context, p *Procedure) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if p.Complexity == "" {
		p.Complexity = ComplexityModerate
	}
	if !validComplexities[p.Complexity] {
		return fmt.Errorf("invalid complexity: %s", p.Complexity)
	}
	return s.procedures.Create(ctx, p)
}

func (s *Service) GetProcedure(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return s.procedures.GetByID(ctx, id)
}

func (s *Service) ListProcedures(ctx context.Context, limit, offset int) ([]*Procedure, int, error) {
	return s.procedures.List(ctx, limit, offset)
}

func (s *Service) ListProceduresBySpecialty(ctx context.Context, specialty string) ([]*Procedure, error) {
	return s.procedures.ListBySpecialty(ctx, specialty)
}

// Pools snapshots the catalogs into the read-only view consumed by schedule
// generation.
func (s *Service) Pools(ctx context.Context) (*Pools, error) {
	var staff []*StaffMember
	for _, role := range RequiredRoles {
		members, err := s.staff.ListByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("list %s pool: %w", role, err)
		}
		staff = append(staff, members...)
	}
	procedures, _, err := s.procedures.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list procedure catalog: %w", err)
	}
	return NewPools(staff, procedures, EquipmentTags, RequirementTags), nil
}
