package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies a theatre team position. Every scheduled case carries one
// staff member per required role.
type Role string

const (
	RoleSurgeon                 Role = "surgeon"
	RoleAssistant               Role = "assistant"
	RoleAnaesthetist            Role = "anaesthetist"
	RoleAnaestheticPractitioner Role = "anaesthetic_practitioner"
	RoleScrubPractitioner       Role = "scrub_practitioner"
	RoleHCA                     Role = "hca"
)

// RequiredRoles is the full team a case must be staffed with, in display order.
var RequiredRoles = []Role{
	RoleSurgeon,
	RoleAssistant,
	RoleAnaesthetist,
	RoleAnaestheticPractitioner,
	RoleScrubPractitioner,
	RoleHCA,
}

// ValidRole reports whether r is one of the recognised team roles.
func ValidRole(r Role) bool {
	for _, known := range RequiredRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Complexity is the procedure complexity tier.
type Complexity string

const (
	ComplexityMinor    Complexity = "minor"
	ComplexityModerate Complexity = "moderate"
	ComplexityMajor    Complexity = "major"
	ComplexityComplex  Complexity = "complex"
)

// StaffMember maps to the staff_member table. Specialty is only set for
// specialty-bound roles (surgeons, assistants); an empty specialty means the
// member can be rostered for any specialty. Coordinates and rating are
// populated from the staff directory and consumed by the matching domain.
type StaffMember struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Role       Role      `db:"role" json:"role"`
	Specialty  string    `db:"specialty" json:"specialty,omitempty"`
	ShiftStart *string   `db:"shift_start" json:"shift_start,omitempty"`
	ShiftEnd   *string   `db:"shift_end" json:"shift_end,omitempty"`
	Latitude   *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude  *float64  `db:"longitude" json:"longitude,omitempty"`
	Rating     float64   `db:"rating" json:"rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// HasLocation reports whether the member has last-known coordinates.
func (s *StaffMember) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Procedure maps to the procedure table.
type Procedure struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Specialty       string     `db:"specialty" json:"specialty"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Complexity      Complexity `db:"complexity" json:"complexity"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
