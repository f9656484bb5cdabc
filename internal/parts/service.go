package parts

import (
	"context"
	"fmt"
	"strings"

	dbpkg "github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type partRepository interface {
	Create(ctx context.Context, part *models.Part) (*models.Part, error)
	FindByNumber(ctx context.Context, partNumber string) (*models.Part, error)
	Search(ctx context.Context, query string, limit int) ([]models.Part, error)
	ListAll(ctx context.Context) ([]models.Part, error)
}

// Service exposes catalog part operations.
type Service interface {
	Create(ctx context.Context, input CreatePartInput) (*PartDTO, error)
	Search(ctx context.Context, query string, limit int) ([]PartDTO, error)
	ListAll(ctx context.Context) ([]PartDTO, error)
}

type service struct {
	repo partRepository
}

// NewService builds a part service with the provided repository.
func NewService(repo partRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("part repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePartInput captures the allowed fields for part creation.
type CreatePartInput struct {
	PartNumber  string  `json:"part_number" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// Create returns the existing part when the number already exists,
// otherwise inserts a new row.
func (s *service) Create(ctx context.Context, input CreatePartInput) (*PartDTO, error) {
	number := strings.TrimSpace(input.PartNumber)
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part number is required")
	}

	existing, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup part")
	}
	if existing != nil {
		return FromModel(existing), nil
	}

	created, err := s.repo.Create(ctx, &models.Part{PartNumber: number, Description: input.Description})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			winner, findErr := s.repo.FindByNumber(ctx, number)
			if findErr == nil && winner != nil {
				return FromModel(winner), nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "part already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create part")
	}
	return FromModel(created), nil
}

// Search returns parts matching the query ordered by part number.
func (s *service) Search(ctx context.Context, query string, limit int) ([]PartDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search parts")
	}
	return FromModels(rows), nil
}

// ListAll returns every part for dropdown population.
func (s *service) ListAll(ctx context.Context) ([]PartDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parts")
	}
	return FromModels(rows), nil
}
