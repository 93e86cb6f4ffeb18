package matching

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

func ptr(f float64) *float64 { return &f }

// Central London caller; candidates at increasing distance north.
var testCaller = &Location{Latitude: 51.5074, Longitude: -0.1278}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// London to Edinburgh is roughly 534 km.
	got := haversineKm(51.5074, -0.1278, 55.9533, -3.1883)
	if math.Abs(got-534) > 5 {
		t.Errorf("London-Edinburgh distance = %.1f km, expected ~534", got)
	}

	if d := haversineKm(51.5074, -0.1278, 51.5074, -0.1278); d != 0 {
		t.Errorf("zero-distance pair returned %f", d)
	}
}

func TestRank_AscendingDistance(t *testing.T) {
	pool := []Candidate{
		{Name: "far", Latitude: ptr(53.4808), Longitude: ptr(-2.2426), Rating: 5},    // Manchester
		{Name: "near", Latitude: ptr(51.5155), Longitude: ptr(-0.0922), Rating: 1},   // City of London
		{Name: "middle", Latitude: ptr(52.4862), Longitude: ptr(-1.8904), Rating: 3}, // Birmingham
	}
	ranked := Rank(testCaller, pool)

	wantOrder := []string{"near", "middle", "far"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Errorf("position %d: want %s, got %s", i, want, ranked[i].Name)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if *ranked[i].DistanceKm < *ranked[i-1].DistanceKm {
			t.Errorf("distances not non-decreasing at %d", i)
		}
	}
}

func TestRank_UnlocatedCandidatesFollowByRating(t *testing.T) {
	pool := []Candidate{
		{Name: "no-location low", Rating: 2.1},
		{Name: "located far", Latitude: ptr(55.9533), Longitude: ptr(-3.1883), Rating: 1},
		{Name: "no-location high", Rating: 4.9},
		{Name: "located near", Latitude: ptr(51.5155), Longitude: ptr(-0.0922), Rating: 3},
	}
	ranked := Rank(testCaller, pool)

	wantOrder := []string{"located near", "located far", "no-location high", "no-location low"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Errorf("position %d: want %s, got %s", i, want, ranked[i].Name)
		}
	}
	if ranked[0].DistanceKm == nil || ranked[2].DistanceKm != nil {
		t.Error("distance populated for the wrong group")
	}
}

func TestRank_NoCallerFallsBackToRating(t *testing.T) {
	pool := []Candidate{
		{Name: "b", Latitude: ptr(51.0), Longitude: ptr(0.0), Rating: 3.2},
		{Name: "a", Rating: 4.8},
		{Name: "c", Rating: 1.0},
	}
	ranked := Rank(nil, pool)

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Errorf("position %d: want %s, got %s", i, want, ranked[i].Name)
		}
	}
	for _, r := range ranked {
		if r.DistanceKm != nil {
			t.Errorf("%s: distance computed without a caller location", r.Name)
		}
	}
}

func TestRank_EmptyPool(t *testing.T) {
	if got := Rank(testCaller, nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

// stubSource backs the service tests without a repository.
type stubSource struct {
	members []*catalog.StaffMember
	byRole  map[catalog.Role][]*catalog.StaffMember
}

func (s *stubSource) ListStaff(context.Context, int, int) ([]*catalog.StaffMember, int, error) {
	return s.members, len(s.members), nil
}

func (s *stubSource) ListStaffByRole(_ context.Context, role catalog.Role) ([]*catalog.StaffMember, error) {
	return s.byRole[role], nil
}

func TestRankStaff_RoleRestriction(t *testing.T) {
	surgeon := &catalog.StaffMember{ID: uuid.New(), Name: "Ms Adeyemi", Role: catalog.RoleSurgeon, Rating: 4.5}
	anaesthetist := &catalog.StaffMember{ID: uuid.New(), Name: "Dr Laurent", Role: catalog.RoleAnaesthetist, Rating: 4.9}
	src := &stubSource{
		members: []*catalog.StaffMember{surgeon, anaesthetist},
		byRole:  map[catalog.Role][]*catalog.StaffMember{catalog.RoleSurgeon: {surgeon}},
	}
	svc := NewService(src)

	all, err := svc.RankStaff(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("rank all: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Dr Laurent" {
		t.Errorf("expected both members rating-ordered, got %+v", all)
	}

	surgeons, err := svc.RankStaff(context.Background(), nil, catalog.RoleSurgeon)
	if err != nil {
		t.Fatalf("rank surgeons: %v", err)
	}
	if len(surgeons) != 1 || surgeons[0].Name != "Ms Adeyemi" {
		t.Errorf("expected only the surgeon, got %+v", surgeons)
	}
}
