package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// Store writes complaint attachments under a local uploads directory,
// one subdirectory per complaint.
type Store struct {
	root string
}

// New validates the uploads directory and returns a Store rooted at it.
func New(ctx context.Context, cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("uploads directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "dir", cfg.Dir), "attachment store initialized")
	}
	return &Store{root: cfg.Dir}, nil
}

// SavedFile describes a stored attachment.
type SavedFile struct {
	Filename string
	Path     string
	Size     int64
}

// Save streams the reader to a freshly named file under the complaint's
// directory. The stored filename is a UUID plus the original extension so
// client-supplied names never touch the filesystem.
func (s *Store) Save(complaintID uint, originalFilename string, r io.Reader) (*SavedFile, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	filename := uuid.NewString() + ext

	dir := s.complaintDir(complaintID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating complaint dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating attachment file: %w", err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing attachment: %w", err)
	}

	return &SavedFile{Filename: filename, Path: path, Size: size}, nil
}

// Open returns a reader for the stored file path after checking it still
// resolves inside the store root.
func (s *Store) Open(path string) (io.ReadCloser, error) {
	if err := s.ensureInside(path); err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Remove deletes the stored file. Missing files are not an error so delete
// endpoints stay idempotent.
func (s *Store) Remove(path string) error {
	if err := s.ensureInside(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing attachment: %w", err)
	}
	return nil
}

func (s *Store) complaintDir(complaintID uint) string {
	return filepath.Join(s.root, "complaints", fmt.Sprintf("%d", complaintID))
}

func (s *Store) ensureInside(path string) error {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes uploads dir", path)
	}
	return nil
}
