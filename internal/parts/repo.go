package parts

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// Repository exposes part persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a part repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new part row.
func (r *Repository) Create(ctx context.Context, part *models.Part) (*models.Part, error) {
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

// FindByNumber looks a part up by part number, case-insensitively.
func (r *Repository) FindByNumber(ctx context.Context, partNumber string) (*models.Part, error) {
	var row models.Part
	err := r.db.WithContext(ctx).
		Where("LOWER(part_number) = ?", strings.ToLower(strings.TrimSpace(partNumber))).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID returns (nil, nil) when the part does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Part, error) {
	var row models.Part
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Search returns parts whose number or description contains the query.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Part, error) {
	q := r.db.WithContext(ctx).Model(&models.Part{})
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		needle := "%" + strings.ToLower(trimmed) + "%"
		q = q.Where("LOWER(part_number) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	var rows []models.Part
	err := q.Order("part_number ASC").Limit(limit).Find(&rows).Error
	return rows, err
}

// ListAll returns every part ordered by part number.
func (r *Repository) ListAll(ctx context.Context) ([]models.Part, error) {
	var rows []models.Part
	err := r.db.WithContext(ctx).Order("part_number ASC").Find(&rows).Error
	return rows, err
}
