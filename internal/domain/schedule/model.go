package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

// Case maps to the scheduled_case table. It is the central entity of the
// engine: one procedure in one theatre on one day, staffed and ordered.
//
// TheatreID and Date are immutable after creation. ListOrder, Team, Status
// and the annotation fields are the only mutable parts.
type Case struct {
	ID              uuid.UUID               `db:"id" json:"id"`
	TheatreID       string                  `db:"theatre_id" json:"theatre_id"`
	Date            time.Time               `db:"case_date" json:"date"`
	Start           time.Time               `db:"start_time" json:"start"`
	DurationMinutes int                     `db:"duration_minutes" json:"duration_minutes"`
	ProcedureName   string                  `db:"procedure_name" json:"procedure_name"`
	Specialty       string                  `db:"specialty" json:"specialty"`
	Complexity      catalog.Complexity      `db:"complexity" json:"complexity"`
	Team            map[catalog.Role]string `db:"-" json:"team"`
	ListOrder       int                     `db:"list_order" json:"list_order"`
	Status          Status                  `db:"status" json:"status"`
	Equipment       []string                `db:"-" json:"equipment"`
	Requirements    []string                `db:"-" json:"requirements"`
	Notes           string                  `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time               `db:"updated_at" json:"updated_at"`
}

// End returns the scheduled finish time, excluding turnover.
func (c *Case) End() time.Time {
	return c.Start.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// Surgeon returns the assigned surgeon's name, or "".
func (c *Case) Surgeon() string { return c.Team[catalog.RoleSurgeon] }

// Anaesthetist returns the assigned anaesthetist's name, or "".
func (c *Case) Anaesthetist() string { return c.Team[catalog.RoleAnaesthetist] }

// Clone returns a deep copy so store snapshots cannot be mutated by callers.
func (c *Case) Clone() *Case {
	cp := *c
	cp.Team = make(map[catalog.Role]string, len(c.Team))
	for role, name := range c.Team {
		cp.Team[role] = name
	}
	cp.Equipment = append([]string(nil), c.Equipment...)
	cp.Requirements = append([]string(nil), c.Requirements...)
	return &cp
}

// DayOf truncates a timestamp to its calendar day in UTC. All Date fields
// are normalised through this so map keys and range comparisons agree.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
