package actions

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// ActionFilter narrows the per-complaint action listing.
type ActionFilter struct {
	Status            *enums.ActionStatus
	ResponsiblePerson string
	OverdueOnly       bool
}

// Repository exposes follow-up action persistence, including history and
// dependency rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an action repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an action row.
func (r *Repository) Create(ctx context.Context, action *models.FollowUpAction) (*models.FollowUpAction, error) {
	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		return nil, err
	}
	return action, nil
}

// FindByID loads an action scoped to its complaint. Returns (nil, nil)
// when no such action exists on that complaint.
func (r *Repository) FindByID(ctx context.Context, complaintID, actionID uint) (*models.FollowUpAction, error) {
	var row models.FollowUpAction
	err := r.db.WithContext(ctx).
		Where("id = ? AND complaint_id = ?", actionID, complaintID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByComplaint returns a complaint's actions ordered by action number.
func (r *Repository) ListByComplaint(ctx context.Context, complaintID uint, filter ActionFilter) ([]models.FollowUpAction, error) {
	q := r.db.WithContext(ctx).
		Model(&models.FollowUpAction{}).
		Where("complaint_id = ?", complaintID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if trimmed := strings.TrimSpace(filter.ResponsiblePerson); trimmed != "" {
		q = q.Where("LOWER(responsible_person) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}
	if filter.OverdueOnly {
		q = q.Where("due_date IS NOT NULL AND due_date < ? AND status NOT IN ?",
			time.Now().UTC(), []enums.ActionStatus{enums.ActionStatusCompleted, enums.ActionStatusClosed, enums.ActionStatusCancelled})
	}
	var rows []models.FollowUpAction
	err := q.Order("action_number ASC").Find(&rows).Error
	return rows, err
}

// CountByComplaint returns how many actions a complaint has.
func (r *Repository) CountByComplaint(ctx context.Context, complaintID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FollowUpAction{}).
		Where("complaint_id = ?", complaintID).
		Count(&count).Error
	return count, err
}

// NextActionNumber returns max(action_number)+1 for the complaint.
func (r *Repository) NextActionNumber(ctx context.Context, complaintID uint) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.FollowUpAction{}).
		Where("complaint_id = ?", complaintID).
		Select("MAX(action_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// Save persists the full action row.
func (r *Repository) Save(ctx context.Context, action *models.FollowUpAction) error {
	return r.db.WithContext(ctx).Save(action).Error
}

// SaveAll persists a batch of action rows in one transaction. Used by
// reorder, where the renumbering must land atomically.
func (r *Repository) SaveAll(ctx context.Context, actions []*models.FollowUpAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, action := range actions {
			if err := tx.Save(action).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordHistory inserts an audit row.
func (r *Repository) RecordHistory(ctx context.Context, row *models.ActionHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// ListHistory returns an action's audit trail, newest first.
func (r *Repository) ListHistory(ctx context.Context, actionID uint) ([]models.ActionHistory, error) {
	var rows []models.ActionHistory
	err := r.db.WithContext(ctx).
		Where("action_id = ?", actionID).
		Order("changed_at DESC").
		Find(&rows).Error
	return rows, err
}

// CreateDependency inserts a dependency row.
func (r *Repository) CreateDependency(ctx context.Context, row *models.ActionDependency) (*models.ActionDependency, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ListDependencies returns the prerequisites of an action.
func (r *Repository) ListDependencies(ctx context.Context, actionID uint) ([]models.ActionDependency, error) {
	var rows []models.ActionDependency
	err := r.db.WithContext(ctx).
		Where("action_id = ?", actionID).
		Find(&rows).Error
	return rows, err
}

// HasDependency reports whether a dependency from actionID to
// dependsOnActionID already exists.
func (r *Repository) HasDependency(ctx context.Context, actionID, dependsOnActionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ActionDependency{}).
		Where("action_id = ? AND depends_on_action_id = ?", actionID, dependsOnActionID).
		Count(&count).Error
	return count > 0, err
}
