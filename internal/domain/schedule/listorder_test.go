package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

func seedDay(t *testing.T, repo Repository, theatreID string, day time.Time, n int) []*Case {
	t.Helper()
	var out []*Case
	for i := 1; i <= n; i++ {
		c := &Case{
			ID:              uuid.New(),
			TheatreID:       theatreID,
			Date:            day,
			Start:           day.Add(time.Duration(8+2*(i-1)) * time.Hour),
			DurationMinutes: 90,
			ProcedureName:   "Procedure " + string(rune('A'+i-1)),
			Specialty:       "Orthopaedics",
			Complexity:      catalog.ComplexityModerate,
			Team:            map[catalog.Role]string{catalog.RoleSurgeon: "Ms Adeyemi"},
			ListOrder:       i,
			Status:          StatusScheduled,
		}
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("seed case %d: %v", i, err)
		}
		out = append(out, c)
	}
	return out
}

func ordersByID(t *testing.T, repo Repository, theatreID string, day time.Time) map[uuid.UUID]int {
	t.Helper()
	list, err := repo.ListByTheatreDate(context.Background(), theatreID, day)
	if err != nil {
		t.Fatalf("list theatre day: %v", err)
	}
	out := make(map[uuid.UUID]int, len(list))
	for _, c := range list {
		out[c.ID] = c.ListOrder
	}
	return out
}

func assertContiguous(t *testing.T, repo Repository, theatreID string, day time.Time, n int) {
	t.Helper()
	list, err := repo.ListByTheatreDate(context.Background(), theatreID, day)
	if err != nil {
		t.Fatalf("list theatre day: %v", err)
	}
	if len(list) != n {
		t.Fatalf("expected %d cases, got %d", n, len(list))
	}
	seen := make(map[int]bool)
	for _, c := range list {
		seen[c.ListOrder] = true
	}
	for want := 1; want <= n; want++ {
		if !seen[want] {
			t.Errorf("list orders not contiguous: missing %d", want)
		}
	}
}

func TestSwapOrder_Involution(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 3)
	before := ordersByID(t, repo, "theatre-1", day)

	if err := m.SwapOrder(context.Background(), cases[0].ID, cases[2].ID); err != nil {
		t.Fatalf("swap: %v", err)
	}
	after := ordersByID(t, repo, "theatre-1", day)
	if after[cases[0].ID] != 3 || after[cases[2].ID] != 1 {
		t.Errorf("expected orders swapped to 3/1, got %d/%d", after[cases[0].ID], after[cases[2].ID])
	}
	if after[cases[1].ID] != 2 {
		t.Errorf("bystander case moved from 2 to %d", after[cases[1].ID])
	}
	assertContiguous(t, repo, "theatre-1", day, 3)

	if err := m.SwapOrder(context.Background(), cases[0].ID, cases[2].ID); err != nil {
		t.Fatalf("second swap: %v", err)
	}
	restored := ordersByID(t, repo, "theatre-1", day)
	for id, order := range before {
		if restored[id] != order {
			t.Errorf("double swap did not restore order for %s: want %d, got %d", id, order, restored[id])
		}
	}
}

func TestSwapOrder_SelfSwapRejected(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 2)

	err := m.SwapOrder(context.Background(), cases[0].ID, cases[0].ID)
	if !errors.Is(err, ErrInvalidReorder) {
		t.Fatalf("expected ErrInvalidReorder, got %v", err)
	}
}

func TestSwapOrder_CrossTheatreRejectedWithoutMutation(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	t1 := seedDay(t, repo, "theatre-1", day, 2)
	t2 := seedDay(t, repo, "theatre-2", day, 2)

	err := m.SwapOrder(context.Background(), t1[0].ID, t2[1].ID)
	if !errors.Is(err, ErrInvalidReorder) {
		t.Fatalf("expected ErrInvalidReorder, got %v", err)
	}
	if got := ordersByID(t, repo, "theatre-1", day)[t1[0].ID]; got != 1 {
		t.Errorf("rejected swap mutated theatre-1 order: %d", got)
	}
	if got := ordersByID(t, repo, "theatre-2", day)[t2[1].ID]; got != 2 {
		t.Errorf("rejected swap mutated theatre-2 order: %d", got)
	}
}

func TestSwapOrder_CrossDateRejected(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	a := seedDay(t, repo, "theatre-1", day, 1)
	b := seedDay(t, repo, "theatre-1", day.AddDate(0, 0, 1), 1)

	err := m.SwapOrder(context.Background(), a[0].ID, b[0].ID)
	if !errors.Is(err, ErrInvalidReorder) {
		t.Fatalf("expected ErrInvalidReorder, got %v", err)
	}
}

func TestSwapOrder_UnknownCase(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 1)

	err := m.SwapOrder(context.Background(), cases[0].ID, uuid.New())
	if !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}

func TestMoveToPosition_Up(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 4)

	// Move the 4th case to the front: 1,2,3 all shift down one.
	if err := m.MoveToPosition(context.Background(), cases[3].ID, 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	after := ordersByID(t, repo, "theatre-1", day)
	want := map[uuid.UUID]int{
		cases[3].ID: 1,
		cases[0].ID: 2,
		cases[1].ID: 3,
		cases[2].ID: 4,
	}
	for id, order := range want {
		if after[id] != order {
			t.Errorf("case %s: want order %d, got %d", id, order, after[id])
		}
	}
	assertContiguous(t, repo, "theatre-1", day, 4)
}

func TestMoveToPosition_Down(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 4)

	if err := m.MoveToPosition(context.Background(), cases[0].ID, 3); err != nil {
		t.Fatalf("move: %v", err)
	}
	after := ordersByID(t, repo, "theatre-1", day)
	want := map[uuid.UUID]int{
		cases[1].ID: 1,
		cases[2].ID: 2,
		cases[0].ID: 3,
		cases[3].ID: 4,
	}
	for id, order := range want {
		if after[id] != order {
			t.Errorf("case %s: want order %d, got %d", id, order, after[id])
		}
	}
	assertContiguous(t, repo, "theatre-1", day, 4)
}

func TestMoveToPosition_NoOpAndBadPosition(t *testing.T) {
	repo := NewRepoMemory()
	m := NewOrderManager(repo)
	day := DayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cases := seedDay(t, repo, "theatre-1", day, 3)

	if err := m.MoveToPosition(context.Background(), cases[1].ID, 2); err != nil {
		t.Fatalf("no-op move: %v", err)
	}

	for _, target := range []int{0, -1, 4} {
		err := m.MoveToPosition(context.Background(), cases[1].ID, target)
		if !errors.Is(err, ErrBadPosition) {
			t.Errorf("target %d: expected ErrBadPosition, got %v", target, err)
		}
	}
	assertContiguous(t, repo, "theatre-1", day, 3)
}
