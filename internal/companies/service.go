package companies

import (
	"context"
	"fmt"
	"strings"

	dbpkg "github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type companyRepository interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Search(ctx context.Context, query string, limit int) ([]models.Company, error)
	ListAll(ctx context.Context) ([]models.Company, error)
}

// Service exposes company operations.
type Service interface {
	Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error)
	Search(ctx context.Context, query string, limit int) ([]CompanyDTO, error)
	ListAll(ctx context.Context) ([]CompanyDTO, error)
}

type service struct {
	repo companyRepository
}

// NewService builds a company service with the provided repository.
func NewService(repo companyRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	return &service{repo: repo}, nil
}

// CreateCompanyInput captures the allowed fields for company creation.
type CreateCompanyInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// Create returns the existing company when the name already exists,
// otherwise inserts a new row. Intake forms call this on every submit, so
// creation has to be idempotent on the name.
func (s *service) Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company")
	}
	if existing != nil {
		return FromModel(existing), nil
	}

	created, err := s.repo.Create(ctx, &models.Company{Name: name})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			// lost a race with a concurrent submit; return the winner
			winner, findErr := s.repo.FindByName(ctx, name)
			if findErr == nil && winner != nil {
				return FromModel(winner), nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "company already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create company")
	}
	return FromModel(created), nil
}

// Search returns companies matching the query ordered by name.
func (s *service) Search(ctx context.Context, query string, limit int) ([]CompanyDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search companies")
	}
	return FromModels(rows), nil
}

// ListAll returns every company for dropdown population.
func (s *service) ListAll(ctx context.Context) ([]CompanyDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}
	return FromModels(rows), nil
}
