package schedule

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

func filterFixture() []*Case {
	d1 := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	d2 := d1.AddDate(0, 0, 1)
	return []*Case{
		{
			ID: uuid.New(), TheatreID: "theatre-1", Date: d1,
			Start: d1.Add(8 * time.Hour), DurationMinutes: 90,
			ProcedureName: "Total hip replacement", Specialty: "Orthopaedics",
			Complexity: catalog.ComplexityMajor,
			Team: map[catalog.Role]string{
				catalog.RoleSurgeon:      "Ms Adeyemi",
				catalog.RoleAnaesthetist: "Dr Laurent",
			},
			ListOrder: 1, Status: StatusScheduled,
			Equipment:    []string{"Image intensifier", "Cement mixer"},
			Requirements: []string{"Cell salvage"},
		},
		{
			ID: uuid.New(), TheatreID: "theatre-1", Date: d1,
			Start: d1.Add(10 * time.Hour), DurationMinutes: 60,
			ProcedureName: "Knee arthroscopy", Specialty: "Orthopaedics",
			Complexity: catalog.ComplexityMinor,
			Team: map[catalog.Role]string{
				catalog.RoleSurgeon:      "Ms Adeyemi",
				catalog.RoleAnaesthetist: "Dr Okafor",
			},
			ListOrder: 2, Status: StatusCancelled,
			Equipment: []string{"Arthroscopy stack"},
		},
		{
			ID: uuid.New(), TheatreID: "theatre-2", Date: d2,
			Start: d2.Add(9 * time.Hour), DurationMinutes: 120,
			ProcedureName: "Laparoscopic cholecystectomy", Specialty: "General Surgery",
			Complexity: catalog.ComplexityModerate,
			Team: map[catalog.Role]string{
				catalog.RoleSurgeon:      "Mr Whitfield",
				catalog.RoleAnaesthetist: "Dr Laurent",
			},
			ListOrder: 1, Status: StatusScheduled,
			Equipment:    []string{"Laparoscopic stack"},
			Requirements: []string{"Group and save"},
		},
	}
}

func testEngine() *Engine {
	return NewEngine(DefaultFilterBudget, zerolog.New(os.Stderr), nil)
}

func TestFilter_SingleFields(t *testing.T) {
	cases := filterFixture()
	e := testEngine()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"surgeon", Filter{Surgeon: "Ms Adeyemi"}, 2},
		{"anaesthetist", Filter{Anaesthetist: "Dr Laurent"}, 2},
		{"theatre", Filter{TheatreID: "theatre-2"}, 1},
		{"specialty", Filter{Specialty: "Orthopaedics"}, 2},
		{"procedure", Filter{Procedure: "Knee arthroscopy"}, 1},
		{"status", Filter{Status: StatusCancelled}, 1},
		{"equipment membership", Filter{Equipment: "Cement mixer"}, 1},
		{"requirement membership", Filter{Requirement: "Group and save"}, 1},
		{"no match", Filter{Surgeon: "Nobody"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Apply(cases, tt.filter)
			if len(got) != tt.want {
				t.Errorf("expected %d matches, got %d", tt.want, len(got))
			}
		})
	}
}

func TestFilter_ConjunctionEqualsSequentialApplication(t *testing.T) {
	cases := filterFixture()
	e := testEngine()

	combined := e.Apply(cases, Filter{Surgeon: "Ms Adeyemi", Status: StatusScheduled})
	sequential := e.Apply(e.Apply(cases, Filter{Surgeon: "Ms Adeyemi"}), Filter{Status: StatusScheduled})

	if len(combined) != len(sequential) {
		t.Fatalf("combined filter found %d, sequential found %d", len(combined), len(sequential))
	}
	for i := range combined {
		if combined[i].ID != sequential[i].ID {
			t.Errorf("result %d differs: %s vs %s", i, combined[i].ID, sequential[i].ID)
		}
	}
	if len(combined) != 1 || combined[0].ProcedureName != "Total hip replacement" {
		t.Errorf("unexpected conjunction result: %+v", combined)
	}
}

func TestFilter_FreeText(t *testing.T) {
	cases := filterFixture()
	e := testEngine()

	// Case-insensitive substring over procedure, specialty, names and tags.
	if got := e.Apply(cases, Filter{Text: "LAPAROSCOPIC"}); len(got) != 1 {
		t.Errorf("expected 1 match for procedure text, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{Text: "adeyemi"}); len(got) != 2 {
		t.Errorf("expected 2 matches for surgeon text, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{Text: "cement"}); len(got) != 1 {
		t.Errorf("expected 1 match for equipment text, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{Text: "group and save"}); len(got) != 1 {
		t.Errorf("expected 1 match for requirement text, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{Text: "zzz"}); len(got) != 0 {
		t.Errorf("expected 0 matches, got %d", len(got))
	}
}

func TestFilter_DateRange(t *testing.T) {
	cases := filterFixture()
	e := testEngine()
	d1 := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	d2 := d1.AddDate(0, 0, 1)

	// From without To means a single day.
	if got := e.Apply(cases, Filter{From: &d1}); len(got) != 2 {
		t.Errorf("single-day filter: expected 2 matches, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{From: &d1, To: &d2}); len(got) != 3 {
		t.Errorf("range filter: expected 3 matches, got %d", len(got))
	}
	if got := e.Apply(cases, Filter{From: &d2, To: &d2}); len(got) != 1 {
		t.Errorf("second-day filter: expected 1 match, got %d", len(got))
	}
}

func TestFilter_StableOrderAndNoMutation(t *testing.T) {
	cases := filterFixture()
	// Shuffle the snapshot: output order must still be (date, theatre, order).
	shuffled := []*Case{cases[2], cases[1], cases[0]}
	e := testEngine()

	got := e.Apply(shuffled, Filter{})
	if got[0].ProcedureName != "Total hip replacement" ||
		got[1].ProcedureName != "Knee arthroscopy" ||
		got[2].ProcedureName != "Laparoscopic cholecystectomy" {
		t.Errorf("results not in (date, theatre, order) order: %s, %s, %s",
			got[0].ProcedureName, got[1].ProcedureName, got[2].ProcedureName)
	}

	again := e.Apply(shuffled, Filter{})
	for i := range got {
		if got[i].ID != again[i].ID {
			t.Errorf("identical queries returned different orderings at %d", i)
		}
	}

	if shuffled[0].ProcedureName != "Laparoscopic cholecystectomy" {
		t.Error("filter pass mutated the snapshot")
	}
}
