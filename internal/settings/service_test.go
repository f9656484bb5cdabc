package settings

import (
	"context"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type stubSettingsRepo struct {
	rows     []models.AppSetting
	upserted []models.AppSetting
}

func (s *stubSettingsRepo) ListAll(context.Context) ([]models.AppSetting, error) {
	return s.rows, nil
}

func (s *stubSettingsRepo) Upsert(_ context.Context, row *models.AppSetting) error {
	s.upserted = append(s.upserted, *row)
	return nil
}

func TestGetAllDecodesValues(t *testing.T) {
	repo := &stubSettingsRepo{rows: []models.AppSetting{
		{Key: "max_open_complaints", ValueJSON: "25"},
		{Key: "intake_banner", ValueJSON: `{"enabled":true}`},
		{Key: "legacy", ValueJSON: "not-json{"},
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	out, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if out["max_open_complaints"] != float64(25) {
		t.Fatalf("numeric setting should decode, got %v", out["max_open_complaints"])
	}
	banner, ok := out["intake_banner"].(map[string]any)
	if !ok || banner["enabled"] != true {
		t.Fatalf("object setting should decode, got %v", out["intake_banner"])
	}
	if out["legacy"] != "not-json{" {
		t.Fatalf("undecodable value should pass through raw, got %v", out["legacy"])
	}
}

func TestPutAllUpsertsEveryKey(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	err := svc.PutAll(context.Background(), map[string]any{
		"max_open_complaints": 50,
		"intake_banner":       map[string]any{"enabled": false},
	}, "admin@partsdesk.io")
	if err != nil {
		t.Fatalf("put all: %v", err)
	}
	if len(repo.upserted) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(repo.upserted))
	}
	for _, row := range repo.upserted {
		if row.UpdatedBy != "admin@partsdesk.io" {
			t.Fatalf("updated_by should be recorded, got %q", row.UpdatedBy)
		}
	}
}

func TestPutAllRejectsEmptyPayload(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	err := svc.PutAll(context.Background(), map[string]any{}, "admin")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPutAllRejectsBlankKey(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	err := svc.PutAll(context.Background(), map[string]any{" ": 1}, "admin")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
