package schedule

// Status is the lifecycle state of a scheduled case. Cancellation is a
// transition, not a deletion: cancelled cases stay in the store for audit.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDelayed    Status = "delayed"
)

// transitions maps each status to the set of statuses reachable from it.
// Completed and cancelled are terminal. A delayed case may resume (back to
// scheduled) or be taken straight to theatre.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusDelayed},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusDelayed},
	StatusDelayed:    {StatusScheduled, StatusInProgress, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a recognised lifecycle status.
func ValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a case may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func Terminal(s Status) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}
