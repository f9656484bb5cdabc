package enums

import "fmt"

// ActionPriority ranks the urgency of a follow-up action.
type ActionPriority string

const (
	ActionPriorityLow      ActionPriority = "low"
	ActionPriorityMedium   ActionPriority = "medium"
	ActionPriorityHigh     ActionPriority = "high"
	ActionPriorityCritical ActionPriority = "critical"
)

var validActionPriorities = []ActionPriority{
	ActionPriorityLow,
	ActionPriorityMedium,
	ActionPriorityHigh,
	ActionPriorityCritical,
}

// String implements fmt.Stringer.
func (a ActionPriority) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActionPriority.
func (a ActionPriority) IsValid() bool {
	for _, candidate := range validActionPriorities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActionPriority converts raw input into an ActionPriority.
func ParseActionPriority(value string) (ActionPriority, error) {
	for _, candidate := range validActionPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid action priority %q", value)
}
