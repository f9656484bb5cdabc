package offline

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	dbpkg "github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// Queue persists captured mutations in a local SQLite database so they
// survive restarts while the backend is unreachable.
type Queue struct {
	db *gorm.DB
}

// NewQueue prepares the queue schema on the provided connection.
func NewQueue(db *gorm.DB) (*Queue, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if err := db.AutoMigrate(&models.QueuedRequest{}); err != nil {
		return nil, fmt.Errorf("migrating queue schema: %w", err)
	}
	return &Queue{db: db}, nil
}

// Enqueue appends a captured request. Duplicate idempotency keys are
// ignored so a retried client call never queues twice.
func (q *Queue) Enqueue(ctx context.Context, req models.QueuedRequest) error {
	if req.Method == "" || req.Path == "" {
		return errors.New("method and path are required")
	}
	if req.IdempotencyKey == "" {
		return errors.New("idempotency key is required")
	}
	req.Status = enums.QueuedRequestStatusPending

	err := q.db.WithContext(ctx).Create(&req).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// FetchPending returns up to limit pending requests in FIFO order.
func (q *Queue) FetchPending(ctx context.Context, limit int) ([]models.QueuedRequest, error) {
	var rows []models.QueuedRequest
	err := q.db.WithContext(ctx).
		Where("status = ?", enums.QueuedRequestStatusPending).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkSent records a successful replay.
func (q *Queue) MarkSent(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Model(&models.QueuedRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   enums.QueuedRequestStatusSent,
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}

// MarkAttemptFailed bumps the attempt counter and, once maxAttempts is
// reached, parks the request in the failed state.
func (q *Queue) MarkAttemptFailed(ctx context.Context, id uint, cause error, maxAttempts int) error {
	updates := map[string]any{
		"attempts": gorm.Expr("attempts + 1"),
	}
	if cause != nil {
		msg := cause.Error()
		updates["last_error"] = msg
	}

	if err := q.db.WithContext(ctx).Model(&models.QueuedRequest{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}

	if maxAttempts > 0 {
		return q.db.WithContext(ctx).Model(&models.QueuedRequest{}).
			Where("id = ? AND attempts >= ?", id, maxAttempts).
			Update("status", enums.QueuedRequestStatusFailed).Error
	}
	return nil
}

// PendingCount returns how many requests are waiting for replay.
func (q *Queue) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&models.QueuedRequest{}).
		Where("status = ?", enums.QueuedRequestStatusPending).
		Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return dbpkg.IsUniqueViolation(err, "")
}
