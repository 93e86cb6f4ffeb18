package schedule

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusDelayed, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusDelayed, true},
		{StatusInProgress, StatusScheduled, false},
		{StatusDelayed, StatusScheduled, true},
		{StatusDelayed, StatusInProgress, true},
		{StatusDelayed, StatusCancelled, true},
		{StatusDelayed, StatusCompleted, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !Terminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusScheduled, StatusInProgress, StatusDelayed} {
		if Terminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if Terminal(Status("postponed")) {
		t.Error("unknown status reported as terminal")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusDelayed} {
		if !ValidStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidStatus(Status("postponed")) {
		t.Error("postponed should not be valid")
	}
}
