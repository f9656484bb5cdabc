package responsibles

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// Repository exposes responsible person persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a person repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a person row.
func (r *Repository) Create(ctx context.Context, person *models.ResponsiblePerson) (*models.ResponsiblePerson, error) {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

// FindByID returns (nil, nil) when the person does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.ResponsiblePerson, error) {
	var row models.ResponsiblePerson
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByName matches the exact name. Returns (nil, nil) when absent.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.ResponsiblePerson, error) {
	var row models.ResponsiblePerson
	err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindActiveByName matches the exact name of an active person. Action
// assignment validates assignees through this.
func (r *Repository) FindActiveByName(ctx context.Context, name string) (*models.ResponsiblePerson, error) {
	var row models.ResponsiblePerson
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", strings.TrimSpace(name), true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns persons ordered by name, optionally active only and
// optionally filtered by a name or email substring.
func (r *Repository) List(ctx context.Context, activeOnly bool, search string) ([]models.ResponsiblePerson, error) {
	q := r.db.WithContext(ctx).Model(&models.ResponsiblePerson{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if trimmed := strings.TrimSpace(search); trimmed != "" {
		like := "%" + strings.ToLower(trimmed) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	var rows []models.ResponsiblePerson
	err := q.Order("name ASC").Find(&rows).Error
	return rows, err
}

// Save persists the full person row.
func (r *Repository) Save(ctx context.Context, person *models.ResponsiblePerson) error {
	return r.db.WithContext(ctx).Save(person).Error
}
