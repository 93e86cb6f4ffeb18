// Package theatre models the operating theatre registry: which theatres
// exist and which specialty each is currently bound to. The binding is
// configuration, not code, so theatres can be reassigned without a rebuild.
package theatre

// Theatre is one operating theatre with its bound specialty.
type Theatre struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Specialty string `yaml:"specialty" json:"specialty"`
}
