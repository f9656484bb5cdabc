package responsibles

import (
	"context"
	"fmt"
	"strings"

	dbpkg "github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type personRepository interface {
	Create(ctx context.Context, person *models.ResponsiblePerson) (*models.ResponsiblePerson, error)
	FindByID(ctx context.Context, id uint) (*models.ResponsiblePerson, error)
	FindByName(ctx context.Context, name string) (*models.ResponsiblePerson, error)
	List(ctx context.Context, activeOnly bool, search string) ([]models.ResponsiblePerson, error)
	Save(ctx context.Context, person *models.ResponsiblePerson) error
}

// Service exposes responsible person operations.
type Service interface {
	List(ctx context.Context, activeOnly bool, search string) ([]PersonDTO, error)
	Create(ctx context.Context, input CreatePersonInput) (*PersonDTO, error)
	Update(ctx context.Context, id uint, input UpdatePersonInput) (*PersonDTO, error)
	Deactivate(ctx context.Context, id uint) error
}

type service struct {
	repo personRepository
}

// NewService builds a responsible person service.
func NewService(repo personRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("person repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePersonInput captures a new directory entry.
type CreatePersonInput struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// UpdatePersonInput applies a partial edit. Nil fields are left untouched.
type UpdatePersonInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email      *string `json:"email" validate:"omitempty,max=255"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	IsActive   *bool   `json:"is_active"`
}

// List returns directory entries, active only by default.
func (s *service) List(ctx context.Context, activeOnly bool, search string) ([]PersonDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list responsible persons")
	}
	return FromModels(rows), nil
}

// Create inserts a new active person. Names are unique.
func (s *service) Create(ctx context.Context, input CreatePersonInput) (*PersonDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup person")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "responsible person with this name already exists")
	}

	created, err := s.repo.Create(ctx, &models.ResponsiblePerson{
		Name:       name,
		Email:      input.Email,
		Department: input.Department,
		IsActive:   true,
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "responsible person with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create person")
	}
	return FromModel(created), nil
}

// Update applies a partial edit, guarding name uniqueness.
func (s *service) Update(ctx context.Context, id uint, input UpdatePersonInput) (*PersonDTO, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load person")
	}
	if person == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "responsible person not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if name != person.Name {
			dup, err := s.repo.FindByName(ctx, name)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup person")
			}
			if dup != nil && dup.ID != id {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "another person with this name already exists")
			}
			person.Name = name
		}
	}
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		if trimmed == "" {
			person.Email = nil
		} else {
			person.Email = &trimmed
		}
	}
	if input.Department != nil {
		trimmed := strings.TrimSpace(*input.Department)
		if trimmed == "" {
			person.Department = nil
		} else {
			person.Department = &trimmed
		}
	}
	if input.IsActive != nil {
		person.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, person); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update person")
	}
	return FromModel(person), nil
}

// Deactivate soft-deletes the person so existing actions keep their
// assignee.
func (s *service) Deactivate(ctx context.Context, id uint) error {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load person")
	}
	if person == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "responsible person not found")
	}
	if !person.IsActive {
		return nil
	}
	person.IsActive = false
	if err := s.repo.Save(ctx, person); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate person")
	}
	return nil
}
