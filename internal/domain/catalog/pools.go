package catalog

// Pools is the read-only view of the staff and procedure catalogs consumed by
// schedule generation. It is built once per generation run and never mutated
// afterwards, so it is safe to share across theatre-days.
type Pools struct {
	staff        map[Role][]*StaffMember
	procedures   map[string][]*Procedure
	equipment    map[string][]string
	requirements map[string][]string
}

// NewPools indexes the given catalogs. Equipment and requirement tags are
// keyed by specialty.
func NewPools(staff []*StaffMember, procedures []*Procedure, equipment, requirements map[string][]string) *Pools {
	p := &Pools{
		staff:        make(map[Role][]*StaffMember),
		procedures:   make(map[string][]*Procedure),
		equipment:    equipment,
		requirements: requirements,
	}
	if p.equipment == nil {
		p.equipment = map[string][]string{}
	}
	if p.requirements == nil {
		p.requirements = map[string][]string{}
	}
	for _, s := range staff {
		p.staff[s.Role] = append(p.staff[s.Role], s)
	}
	for _, proc := range procedures {
		p.procedures[proc.Specialty] = append(p.procedures[proc.Specialty], proc)
	}
	return p
}

// StaffByRole returns the members eligible for a role within a specialty.
// Members with an empty specialty are eligible everywhere.
func (p *Pools) StaffByRole(role Role, specialty string) []*StaffMember {
	var out []*StaffMember
	for _, s := range p.staff[role] {
		if s.Specialty == "" || s.Specialty == specialty {
			out = append(out, s)
		}
	}
	return out
}

// ProceduresForSpecialty returns the procedure catalog bound to a specialty.
func (p *Pools) ProceduresForSpecialty(specialty string) []*Procedure {
	return p.procedures[specialty]
}

// EquipmentForSpecialty returns the equipment tags available to a specialty.
func (p *Pools) EquipmentForSpecialty(specialty string) []string {
	return p.equipment[specialty]
}

// RequirementsForSpecialty returns the requirement tags available to a specialty.
func (p *Pools) RequirementsForSpecialty(specialty string) []string {
	return p.requirements[specialty]
}
