package disk

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), config.UploadsConfig{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(7, "photo.JPG", strings.NewReader("fake-image-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Size != int64(len("fake-image-bytes")) {
		t.Fatalf("unexpected size %d", saved.Size)
	}
	if !strings.HasSuffix(saved.Filename, ".jpg") {
		t.Fatalf("extension should be lowercased, got %s", saved.Filename)
	}
	if saved.Filename == "photo.jpg" {
		t.Fatal("stored filename must not reuse the client name")
	}

	r, err := store.Open(saved.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "fake-image-bytes" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save(1, "doc.pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(saved.Path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(saved.Path); err != nil {
		t.Fatalf("second remove should not fail: %v", err)
	}
}

func TestOpenRejectsEscapingPath(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Open("/etc/passwd"); err == nil {
		t.Fatal("expected path escape error")
	}
}
