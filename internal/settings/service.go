package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type settingsRepository interface {
	ListAll(ctx context.Context) ([]models.AppSetting, error)
	Upsert(ctx context.Context, row *models.AppSetting) error
}

// Service exposes the app settings map.
type Service interface {
	GetAll(ctx context.Context) (map[string]any, error)
	PutAll(ctx context.Context, values map[string]any, updatedBy string) error
}

type service struct {
	repo settingsRepository
}

// NewService builds a settings service.
func NewService(repo settingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// GetAll decodes every stored setting into a flat map. Values that fail
// to decode are returned as their raw stored string.
func (s *service) GetAll(ctx context.Context) (map[string]any, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	out := make(map[string]any, len(rows))
	for _, row := range rows {
		var value any
		if err := json.Unmarshal([]byte(row.ValueJSON), &value); err != nil {
			out[row.Key] = row.ValueJSON
			continue
		}
		out[row.Key] = value
	}
	return out, nil
}

// PutAll upserts every key in the payload, recording who changed it.
func (s *service) PutAll(ctx context.Context, values map[string]any, updatedBy string) error {
	if len(values) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "settings payload is empty")
	}
	if strings.TrimSpace(updatedBy) == "" {
		updatedBy = "System"
	}
	for key, value := range values {
		if strings.TrimSpace(key) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "setting keys cannot be blank")
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("encoding setting %q", key))
		}
		row := &models.AppSetting{Key: key, ValueJSON: string(encoded), UpdatedBy: updatedBy}
		if err := s.repo.Upsert(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("saving setting %q", key))
		}
	}
	return nil
}
