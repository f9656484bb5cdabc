package parts

import (
	"context"
	"errors"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type stubPartRepo struct {
	byNumber *models.Part
	created  *models.Part
	rows     []models.Part
	err      error
}

func (s *stubPartRepo) Create(_ context.Context, part *models.Part) (*models.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	part.ID = 1
	s.created = part
	return part, nil
}

func (s *stubPartRepo) FindByNumber(context.Context, string) (*models.Part, error) {
	return s.byNumber, nil
}

func (s *stubPartRepo) Search(context.Context, string, int) ([]models.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubPartRepo) ListAll(context.Context) ([]models.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestCreateReturnsExistingPart(t *testing.T) {
	existing := &models.Part{ID: 12, PartNumber: "GX-100"}
	svc, err := NewService(&stubPartRepo{byNumber: existing})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreatePartInput{PartNumber: "gx-100"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID != 12 {
		t.Fatalf("expected existing id 12, got %d", dto.ID)
	}
}

func TestCreateInsertsNewPart(t *testing.T) {
	repo := &stubPartRepo{}
	svc, _ := NewService(repo)

	desc := "hydraulic seal kit"
	dto, err := svc.Create(context.Background(), CreatePartInput{PartNumber: " HS-220 ", Description: &desc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.PartNumber != "HS-220" {
		t.Fatalf("part number should be trimmed, got %q", dto.PartNumber)
	}
	if repo.created == nil || repo.created.Description == nil {
		t.Fatal("description should be persisted")
	}
}

func TestCreateRejectsBlankNumber(t *testing.T) {
	svc, _ := NewService(&stubPartRepo{})

	_, err := svc.Create(context.Background(), CreatePartInput{PartNumber: ""})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListAllWrapsDependencyError(t *testing.T) {
	svc, _ := NewService(&stubPartRepo{err: errors.New("boom")})

	_, err := svc.ListAll(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
