package attachments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// Repository exposes attachment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an attachment repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an attachment row.
func (r *Repository) Create(ctx context.Context, attachment *models.ComplaintAttachment) (*models.ComplaintAttachment, error) {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

// FindByID returns (nil, nil) when the attachment does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.ComplaintAttachment, error) {
	var row models.ComplaintAttachment
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByComplaint returns a complaint's attachments oldest first.
func (r *Repository) ListByComplaint(ctx context.Context, complaintID uint) ([]models.ComplaintAttachment, error) {
	var rows []models.ComplaintAttachment
	err := r.db.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// Delete removes the attachment row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ComplaintAttachment{}, id).Error
}

// CountByComplaint returns how many attachments a complaint has.
func (r *Repository) CountByComplaint(ctx context.Context, complaintID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ComplaintAttachment{}).
		Where("complaint_id = ?", complaintID).
		Count(&count).Error
	return count, err
}
