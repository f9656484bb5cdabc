package enums

import "fmt"

// ComplaintKind distinguishes formal complaints from informal notifications.
type ComplaintKind string

const (
	ComplaintKindOfficial     ComplaintKind = "official"
	ComplaintKindNotification ComplaintKind = "notification"
)

var validComplaintKinds = []ComplaintKind{
	ComplaintKindOfficial,
	ComplaintKindNotification,
}

// String implements fmt.Stringer.
func (c ComplaintKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComplaintKind.
func (c ComplaintKind) IsValid() bool {
	for _, candidate := range validComplaintKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComplaintKind converts raw input into a ComplaintKind.
func ParseComplaintKind(value string) (ComplaintKind, error) {
	for _, candidate := range validComplaintKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint kind %q", value)
}
