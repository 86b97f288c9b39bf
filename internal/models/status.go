package models

import "fmt"

// Status is the booking lifecycle state.
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusOccupied  Status = "occupied"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions lists the allowed moves. Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusReserved: {StatusOccupied, StatusCancelled},
	StatusOccupied: {StatusCompleted, StatusCancelled},
}

// ParseStatus validates a raw status value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusReserved, StatusOccupied, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether the move from s to next is allowed.
// Keeping the current status is always allowed so that edits which do not
// touch the status pass through.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports a rejected booking status move.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}
