package theatre

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry holds the configured theatres in a stable order.
type Registry struct {
	theatres []Theatre
	byID     map[string]Theatre
}

// NewRegistry builds a registry from an explicit theatre list. IDs must be
// unique and every theatre must carry a specialty.
func NewRegistry(theatres []Theatre) (*Registry, error) {
	r := &Registry{byID: make(map[string]Theatre, len(theatres))}
	for _, t := range theatres {
		if t.ID == "" {
			return nil, fmt.Errorf("theatre with empty id")
		}
		if t.Specialty == "" {
			return nil, fmt.Errorf("theatre %s has no bound specialty", t.ID)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate theatre id %s", t.ID)
		}
		r.byID[t.ID] = t
		r.theatres = append(r.theatres, t)
	}
	return r, nil
}

type registryFile struct {
	Theatres []Theatre `yaml:"theatres"`
}

// LoadRegistry reads a registry from a YAML file of the form:
//
//	theatres:
//	  - id: theatre-1
//	    name: Theatre 1
//	    specialty: Orthopaedics
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if len(f.Theatres) == 0 {
		return nil, fmt.Errorf("registry %s defines no theatres", path)
	}
	return NewRegistry(f.Theatres)
}

// DefaultRegistry is the demo registry used when no file is configured.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry([]Theatre{
		{ID: "theatre-1", Name: "Theatre 1", Specialty: "Orthopaedics"},
		{ID: "theatre-2", Name: "Theatre 2", Specialty: "General Surgery"},
		{ID: "theatre-3", Name: "Theatre 3", Specialty: "ENT"},
		{ID: "theatre-4", Name: "Theatre 4", Specialty: "Urology"},
	})
	return r
}

// Theatres returns all theatres in registry order.
func (r *Registry) Theatres() []Theatre {
	out := make([]Theatre, len(r.theatres))
	copy(out, r.theatres)
	return out
}

// Get looks up a theatre by ID.
func (r *Registry) Get(id string) (Theatre, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// SpecialtyFor returns the specialty bound to a theatre ID, or "" if the
// theatre is unknown.
func (r *Registry) SpecialtyFor(id string) string {
	return r.byID[id].Specialty
}

// Len returns the number of registered theatres.
func (r *Registry) Len() int { return len(r.theatres) }
