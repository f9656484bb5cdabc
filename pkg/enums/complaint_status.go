package enums

import "fmt"

// ComplaintStatus tracks the lifecycle of a complaint, including the
// return/authorize/reject outcomes used by the RAR dashboard.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
	ComplaintStatusReturned   ComplaintStatus = "returned"
	ComplaintStatusAuthorized ComplaintStatus = "authorized"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

var validComplaintStatuses = []ComplaintStatus{
	ComplaintStatusOpen,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
	ComplaintStatusReturned,
	ComplaintStatusAuthorized,
	ComplaintStatusRejected,
}

// String implements fmt.Stringer.
func (c ComplaintStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComplaintStatus.
func (c ComplaintStatus) IsValid() bool {
	for _, candidate := range validComplaintStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status marks the end of the complaint
// lifecycle. Terminal complaints stamp resolved_at when entered.
func (c ComplaintStatus) IsTerminal() bool {
	switch c {
	case ComplaintStatusResolved, ComplaintStatusClosed,
		ComplaintStatusReturned, ComplaintStatusAuthorized, ComplaintStatusRejected:
		return true
	}
	return false
}

// ParseComplaintStatus converts raw input into a ComplaintStatus.
func ParseComplaintStatus(value string) (ComplaintStatus, error) {
	for _, candidate := range validComplaintStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint status %q", value)
}
