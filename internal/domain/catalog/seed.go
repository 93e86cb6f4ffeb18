package catalog

import (
	"context"
	"fmt"
)

type seedStaff struct {
	name      string
	role      Role
	specialty string
	lat, lon  float64
	rating    float64
}

type seedProcedure struct {
	name       string
	specialty  string
	duration   int
	complexity Complexity
}

var seedStaffData = []seedStaff{
	{"J. Okafor", RoleSurgeon, "Orthopaedics", 51.5072, -0.1276, 4.8},
	{"H. Virtanen", RoleSurgeon, "Orthopaedics", 51.4545, -2.5879, 4.6},
	{"A. Reyes", RoleSurgeon, "General Surgery", 53.4808, -2.2426, 4.7},
	{"M. Durand", RoleSurgeon, "General Surgery", 52.4862, -1.8904, 4.3},
	{"S. Lindqvist", RoleSurgeon, "ENT", 51.7520, -1.2577, 4.5},
	{"P. Adeyemi", RoleSurgeon, "Urology", 50.9097, -1.4044, 4.9},
	{"R. Kowalski", RoleAssistant, "Orthopaedics", 51.5155, -0.1419, 4.1},
	{"T. Nguyen", RoleAssistant, "General Surgery", 53.4084, -2.9916, 4.4},
	{"L. Haddad", RoleAssistant, "", 52.2053, 0.1218, 4.2},
	{"C. Petrov", RoleAnaesthetist, "", 51.4816, -3.1791, 4.7},
	{"E. Moretti", RoleAnaesthetist, "", 55.9533, -3.1883, 4.5},
	{"D. Ferreira", RoleAnaesthetist, "", 51.4545, -0.9781, 4.3},
	{"K. Sato", RoleAnaestheticPractitioner, "", 52.6309, 1.2974, 4.6},
	{"B. Olsen", RoleAnaestheticPractitioner, "", 50.8225, -0.1372, 4.0},
	{"N. Campbell", RoleScrubPractitioner, "", 53.8008, -1.5491, 4.8},
	{"F. Dubois", RoleScrubPractitioner, "", 54.9783, -1.6178, 4.2},
	{"G. Ivanova", RoleHCA, "", 52.9548, -1.1581, 4.4},
	{"W. Mensah", RoleHCA, "", 51.4552, -0.9787, 4.1},
}

var seedProcedureData = []seedProcedure{
	{"Total hip replacement", "Orthopaedics", 120, ComplexityMajor},
	{"Knee arthroscopy", "Orthopaedics", 60, ComplexityMinor},
	{"ACL reconstruction", "Orthopaedics", 90, ComplexityModerate},
	{"Spinal decompression", "Orthopaedics", 150, ComplexityComplex},
	{"Laparoscopic cholecystectomy", "General Surgery", 90, ComplexityModerate},
	{"Inguinal hernia repair", "General Surgery", 60, ComplexityMinor},
	{"Bowel resection", "General Surgery", 180, ComplexityComplex},
	{"Tonsillectomy", "ENT", 45, ComplexityMinor},
	{"Septoplasty", "ENT", 60, ComplexityModerate},
	{"Thyroidectomy", "ENT", 120, ComplexityMajor},
	{"Flexible cystoscopy", "Urology", 30, ComplexityMinor},
	{"TURP", "Urology", 75, ComplexityModerate},
	{"Nephrectomy", "Urology", 180, ComplexityComplex},
}

// Seed populates the catalogs with a reproducible demo roster and procedure
// set covering every required role and all seeded specialties. Safe to call
// once at startup of a demo environment.
func Seed(ctx context.Context, svc *Service) error {
	for _, s := range seedStaffData {
		lat, lon := s.lat, s.lon
		m := &StaffMember{
			Name:      s.name,
			Role:      s.role,
			Specialty: s.specialty,
			Latitude:  &lat,
			Longitude: &lon,
			Rating:    s.rating,
		}
		if err := svc.CreateStaffMember(ctx, m); err != nil {
			return fmt.Errorf("seed staff %s: %w", s.name, err)
		}
	}
	for _, p := range seedProcedureData {
		proc := &Procedure{
			Name:            p.name,
			Specialty:       p.specialty,
			DurationMinutes: p.duration,
			Complexity:      p.complexity,
		}
		if err := svc.CreateProcedure(ctx, proc); err != nil {
			return fmt.Errorf("seed procedure %s: %w", p.name, err)
		}
	}
	return nil
}
