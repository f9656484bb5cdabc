package responsibles

import (
	"context"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type stubPersonRepo struct {
	byID    *models.ResponsiblePerson
	byName  *models.ResponsiblePerson
	created *models.ResponsiblePerson
	saved   *models.ResponsiblePerson
	rows    []models.ResponsiblePerson
}

func (s *stubPersonRepo) Create(_ context.Context, person *models.ResponsiblePerson) (*models.ResponsiblePerson, error) {
	person.ID = 1
	s.created = person
	return person, nil
}

func (s *stubPersonRepo) FindByID(context.Context, uint) (*models.ResponsiblePerson, error) {
	return s.byID, nil
}

func (s *stubPersonRepo) FindByName(context.Context, string) (*models.ResponsiblePerson, error) {
	return s.byName, nil
}

func (s *stubPersonRepo) List(context.Context, bool, string) ([]models.ResponsiblePerson, error) {
	return s.rows, nil
}

func (s *stubPersonRepo) Save(_ context.Context, person *models.ResponsiblePerson) error {
	s.saved = person
	return nil
}

func TestCreatePerson(t *testing.T) {
	repo := &stubPersonRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreatePersonInput{Name: "  Jordan Fields  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Jordan Fields" {
		t.Fatalf("name should be trimmed, got %q", dto.Name)
	}
	if !dto.IsActive {
		t.Fatal("new persons start active")
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo := &stubPersonRepo{byName: &models.ResponsiblePerson{ID: 2, Name: "Jordan Fields"}}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CreatePersonInput{Name: "Jordan Fields"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateRejectsNameTakenByAnother(t *testing.T) {
	repo := &stubPersonRepo{
		byID:   &models.ResponsiblePerson{ID: 1, Name: "Jordan Fields", IsActive: true},
		byName: &models.ResponsiblePerson{ID: 2, Name: "Sam Porter"},
	}
	svc, _ := NewService(repo)

	name := "Sam Porter"
	_, err := svc.Update(context.Background(), 1, UpdatePersonInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateClearsEmailOnBlank(t *testing.T) {
	email := "old@partsdesk.io"
	repo := &stubPersonRepo{byID: &models.ResponsiblePerson{ID: 1, Name: "Jordan Fields", Email: &email, IsActive: true}}
	svc, _ := NewService(repo)

	blank := "  "
	dto, err := svc.Update(context.Background(), 1, UpdatePersonInput{Email: &blank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Email != nil {
		t.Fatalf("blank email should clear the field, got %v", *dto.Email)
	}
}

func TestDeactivateSoftDeletes(t *testing.T) {
	repo := &stubPersonRepo{byID: &models.ResponsiblePerson{ID: 1, Name: "Jordan Fields", IsActive: true}}
	svc, _ := NewService(repo)

	if err := svc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if repo.saved == nil || repo.saved.IsActive {
		t.Fatal("person should be saved inactive")
	}
}

func TestDeactivateUnknownPerson(t *testing.T) {
	svc, _ := NewService(&stubPersonRepo{})

	err := svc.Deactivate(context.Background(), 9)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
