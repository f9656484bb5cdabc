package companies

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// Repository exposes company persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a company repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new company row.
func (r *Repository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// FindByName looks a company up case-insensitively.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	var row models.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID returns (nil, nil) when the company does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	var row models.Company
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Search returns companies whose name contains the query, newest first.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Company, error) {
	q := r.db.WithContext(ctx).Model(&models.Company{})
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}
	var rows []models.Company
	err := q.Order("name ASC").Limit(limit).Find(&rows).Error
	return rows, err
}

// ListAll returns every company ordered by name.
func (r *Repository) ListAll(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}
