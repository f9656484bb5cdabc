package enums

import "fmt"

// QueuedRequestStatus tracks an offline-queued mutation through replay.
type QueuedRequestStatus string

const (
	QueuedRequestStatusPending QueuedRequestStatus = "pending"
	QueuedRequestStatusSent    QueuedRequestStatus = "sent"
	QueuedRequestStatusFailed  QueuedRequestStatus = "failed"
)

var validQueuedRequestStatuses = []QueuedRequestStatus{
	QueuedRequestStatusPending,
	QueuedRequestStatusSent,
	QueuedRequestStatusFailed,
}

// String implements fmt.Stringer.
func (q QueuedRequestStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QueuedRequestStatus.
func (q QueuedRequestStatus) IsValid() bool {
	for _, candidate := range validQueuedRequestStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQueuedRequestStatus converts raw input into a QueuedRequestStatus.
func ParseQueuedRequestStatus(value string) (QueuedRequestStatus, error) {
	for _, candidate := range validQueuedRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid queued request status %q", value)
}
