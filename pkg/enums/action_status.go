package enums

import "fmt"

// ActionStatus tracks the lifecycle of a follow-up action.
type ActionStatus string

const (
	ActionStatusOpen       ActionStatus = "open"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusClosed     ActionStatus = "closed"
	ActionStatusCancelled  ActionStatus = "cancelled"
)

var validActionStatuses = []ActionStatus{
	ActionStatusOpen,
	ActionStatusInProgress,
	ActionStatusPending,
	ActionStatusCompleted,
	ActionStatusClosed,
	ActionStatusCancelled,
}

// String implements fmt.Stringer.
func (a ActionStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActionStatus.
func (a ActionStatus) IsValid() bool {
	for _, candidate := range validActionStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsDone reports whether the status closes out the action. Entering a
// done status stamps completed_at and forces completion to 100 percent.
func (a ActionStatus) IsDone() bool {
	return a == ActionStatusCompleted || a == ActionStatusClosed
}

// ParseActionStatus converts raw input into an ActionStatus.
func ParseActionStatus(value string) (ActionStatus, error) {
	for _, candidate := range validActionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action status %q", value)
}
