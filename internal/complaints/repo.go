package complaints

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// ListFilter narrows the complaint listing.
type ListFilter struct {
	Status    *enums.ComplaintStatus
	IssueType *enums.IssueType
	CompanyID *uint
}

// Repository exposes complaint persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a complaint repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a complaint row.
func (r *Repository) Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error) {
	if err := r.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return nil, err
	}
	return complaint, nil
}

// FindByID loads a complaint with its company, part and attachments.
// Returns (nil, nil) when the row does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var row models.Complaint
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Part").
		Preload("Attachments").
		First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns a page of complaints matching the filter, newest first,
// alongside the total count for the same filter.
func (r *Repository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]models.Complaint, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Complaint{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.IssueType != nil {
		base = base.Where("issue_type = ?", *filter.IssueType)
	}
	if filter.CompanyID != nil {
		base = base.Where("company_id = ?", *filter.CompanyID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Complaint
	err := base.
		Preload("Company").
		Preload("Part").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Save persists the full complaint row.
func (r *Repository) Save(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// SetHasAttachments flips the denormalized attachment flag.
func (r *Repository) SetHasAttachments(ctx context.Context, id uint, has bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("has_attachments", has).Error
}
