package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// Repository exposes app setting persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every setting row.
func (r *Repository) ListAll(ctx context.Context) ([]models.AppSetting, error) {
	var rows []models.AppSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, err
}

// Upsert writes a setting, replacing the value for an existing key.
func (r *Repository) Upsert(ctx context.Context, row *models.AppSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_by", "updated_at"}),
		}).
		Create(row).Error
}
