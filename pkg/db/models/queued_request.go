package models

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// QueuedRequest is a mutation captured while the backend was unreachable,
// persisted locally until it can be replayed in FIFO order.
type QueuedRequest struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement"`
	Method         string                    `gorm:"type:varchar(10);not null"`
	Path           string                    `gorm:"type:varchar(500);not null"`
	Body           []byte                    `gorm:"type:blob"`
	ContentType    string                    `gorm:"column:content_type;type:varchar(100);not null"`
	IdempotencyKey string                    `gorm:"column:idempotency_key;type:varchar(64);not null;uniqueIndex"`
	Status         enums.QueuedRequestStatus `gorm:"type:varchar(10);not null;default:pending;index"`
	Attempts       int                       `gorm:"not null;default:0"`
	LastError      *string                   `gorm:"column:last_error;type:text"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
