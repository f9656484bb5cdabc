package attachments

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/storage/disk"
)

type stubAttachmentRepo struct {
	byID    *models.ComplaintAttachment
	created *models.ComplaintAttachment
	rows    []models.ComplaintAttachment
	deleted uint
	count   int64
}

func (s *stubAttachmentRepo) Create(_ context.Context, a *models.ComplaintAttachment) (*models.ComplaintAttachment, error) {
	a.ID = 1
	s.created = a
	return a, nil
}

func (s *stubAttachmentRepo) FindByID(context.Context, uint) (*models.ComplaintAttachment, error) {
	return s.byID, nil
}

func (s *stubAttachmentRepo) ListByComplaint(context.Context, uint) ([]models.ComplaintAttachment, error) {
	return s.rows, nil
}

func (s *stubAttachmentRepo) Delete(_ context.Context, id uint) error {
	s.deleted = id
	return nil
}

func (s *stubAttachmentRepo) CountByComplaint(context.Context, uint) (int64, error) {
	return s.count, nil
}

type stubComplaintFlagRepo struct {
	complaint *models.Complaint
	flagged   *bool
}

func (s *stubComplaintFlagRepo) FindByID(context.Context, uint) (*models.Complaint, error) {
	return s.complaint, nil
}

func (s *stubComplaintFlagRepo) SetHasAttachments(_ context.Context, _ uint, has bool) error {
	s.flagged = &has
	return nil
}

type stubStore struct {
	saved   *disk.SavedFile
	removed []string
}

func (s *stubStore) Save(_ uint, originalFilename string, r io.Reader) (*disk.SavedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.saved = &disk.SavedFile{
		Filename: "generated" + originalFilename[strings.LastIndex(originalFilename, "."):],
		Path:     "/uploads/complaints/1/generated",
		Size:     int64(len(data)),
	}
	return s.saved, nil
}

func (s *stubStore) Open(string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader([]byte("file-bytes"))), nil
}

func (s *stubStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *stubAttachmentRepo, complaints *stubComplaintFlagRepo, store *stubStore, maxBytes int64) Service {
	t.Helper()
	svc, err := NewService(repo, complaints, store, maxBytes, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestUploadStoresFileAndFlagsComplaint(t *testing.T) {
	repo := &stubAttachmentRepo{}
	complaints := &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}
	store := &stubStore{}
	svc := newTestService(t, repo, complaints, store, 1024)

	dto, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "photo.PNG",
		Size:        9,
		Body:        strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if dto.OriginalFilename != "photo.PNG" {
		t.Fatalf("original filename should be kept, got %q", dto.OriginalFilename)
	}
	if dto.MimeType != "image/png" {
		t.Fatalf("mime should come from the extension, got %q", dto.MimeType)
	}
	if complaints.flagged == nil || !*complaints.flagged {
		t.Fatal("has_attachments should be set on first upload")
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}, &stubStore{}, 1024)

	_, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "payload.exe",
		Size:        4,
		Body:        strings.NewReader("bits"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}, &stubStore{}, 1024)

	_, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "payload.txt",
		Size:        4,
		ContentType: "application/x-msdownload",
		Body:        strings.NewReader("bits"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadAcceptsContentTypeWithParameters(t *testing.T) {
	repo := &stubAttachmentRepo{}
	svc := newTestService(t, repo, &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}, &stubStore{}, 1024)

	dto, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "notes.txt",
		Size:        4,
		ContentType: "text/plain; charset=utf-8",
		Body:        strings.NewReader("bits"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if dto.MimeType != "text/plain" {
		t.Fatalf("expected normalized mime type, got %q", dto.MimeType)
	}
}

func TestUploadRejectsOversizedDeclaredSize(t *testing.T) {
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}, &stubStore{}, 8)

	_, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "doc.pdf",
		Size:        9,
		Body:        strings.NewReader("123456789"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRemovesFileWhenActualSizeExceedsCap(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1}}, store, 8)

	_, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 1,
		Filename:    "doc.pdf",
		Size:        4, // lying client
		Body:        strings.NewReader("123456789"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.removed) != 1 {
		t.Fatalf("oversized file should be removed, got %v", store.removed)
	}
}

func TestUploadRejectsUnknownComplaint(t *testing.T) {
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{}, &stubStore{}, 1024)

	_, err := svc.Upload(context.Background(), UploadInput{
		ComplaintID: 9,
		Filename:    "doc.pdf",
		Size:        4,
		Body:        strings.NewReader("bits"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteClearsFlagWhenLastAttachmentRemoved(t *testing.T) {
	repo := &stubAttachmentRepo{
		byID:  &models.ComplaintAttachment{ID: 2, ComplaintID: 1, FilePath: "/uploads/complaints/1/f.pdf"},
		count: 0,
	}
	complaints := &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1, HasAttachments: true}}
	store := &stubStore{}
	svc := newTestService(t, repo, complaints, store, 1024)

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.deleted != 2 {
		t.Fatalf("expected row 2 deleted, got %d", repo.deleted)
	}
	if len(store.removed) != 1 {
		t.Fatal("stored file should be removed")
	}
	if complaints.flagged == nil || *complaints.flagged {
		t.Fatal("has_attachments should be cleared when no attachments remain")
	}
}

func TestDeleteKeepsFlagWhenAttachmentsRemain(t *testing.T) {
	repo := &stubAttachmentRepo{
		byID:  &models.ComplaintAttachment{ID: 2, ComplaintID: 1, FilePath: "/uploads/complaints/1/f.pdf"},
		count: 3,
	}
	complaints := &stubComplaintFlagRepo{complaint: &models.Complaint{ID: 1, HasAttachments: true}}
	svc := newTestService(t, repo, complaints, &stubStore{}, 1024)

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if complaints.flagged != nil {
		t.Fatal("flag should be untouched while attachments remain")
	}
}

func TestOpenDownloadReturnsNotFound(t *testing.T) {
	svc := newTestService(t, &stubAttachmentRepo{}, &stubComplaintFlagRepo{}, &stubStore{}, 1024)

	_, err := svc.OpenDownload(context.Background(), 44)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
