package parts

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Part{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func seedPart(t *testing.T, repo *Repository, number, description string) {
	t.Helper()
	part := &models.Part{PartNumber: number}
	if description != "" {
		part.Description = &description
	}
	if _, err := repo.Create(context.Background(), part); err != nil {
		t.Fatalf("seed part %s: %v", number, err)
	}
}

func TestSearchMatchesNumberOrDescription(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedPart(t, repo, "GX-100", "Hydraulic pump seal")
	seedPart(t, repo, "SEAL-200", "Gasket kit")
	seedPart(t, repo, "BRK-300", "Brake caliper")

	rows, err := repo.Search(ctx, "seal", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rows))
	}
	if rows[0].PartNumber != "GX-100" || rows[1].PartNumber != "SEAL-200" {
		t.Fatalf("unexpected matches %s, %s", rows[0].PartNumber, rows[1].PartNumber)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)

	seedPart(t, repo, "GX-100", "Hydraulic pump seal")

	rows, err := repo.Search(context.Background(), "HYDRAULIC", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 match, got %d", len(rows))
	}
}

func TestSearchWithoutQueryListsUpToLimit(t *testing.T) {
	repo := newTestRepo(t)

	seedPart(t, repo, "GX-100", "")
	seedPart(t, repo, "SEAL-200", "")

	rows, err := repo.Search(context.Background(), "  ", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected limit to apply, got %d rows", len(rows))
	}
}
