package attachments

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/storage/disk"
)

// allowedExtensions mirrors what the intake UI accepts.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

var allowedMIMETypes = func() map[string]bool {
	set := make(map[string]bool, len(allowedExtensions))
	for _, mime := range allowedExtensions {
		set[mime] = true
	}
	return set
}()

// normalizeContentType lowercases a declared media type and strips any
// parameters, e.g. "text/plain; charset=utf-8" becomes "text/plain".
func normalizeContentType(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if i := strings.Index(value, ";"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return value
}

type attachmentRepository interface {
	Create(ctx context.Context, attachment *models.ComplaintAttachment) (*models.ComplaintAttachment, error)
	FindByID(ctx context.Context, id uint) (*models.ComplaintAttachment, error)
	ListByComplaint(ctx context.Context, complaintID uint) ([]models.ComplaintAttachment, error)
	Delete(ctx context.Context, id uint) error
	CountByComplaint(ctx context.Context, complaintID uint) (int64, error)
}

type complaintFlagRepo interface {
	FindByID(ctx context.Context, id uint) (*models.Complaint, error)
	SetHasAttachments(ctx context.Context, id uint, has bool) error
}

type fileStore interface {
	Save(complaintID uint, originalFilename string, r io.Reader) (*disk.SavedFile, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// UploadInput describes an incoming multipart file.
type UploadInput struct {
	ComplaintID uint
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Download pairs attachment metadata with its file stream. The caller owns
// closing Body.
type Download struct {
	Attachment *AttachmentDTO
	Body       io.ReadCloser
}

// Service exposes attachment operations.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*AttachmentDTO, error)
	List(ctx context.Context, complaintID uint) ([]AttachmentDTO, error)
	OpenDownload(ctx context.Context, attachmentID uint) (*Download, error)
	Delete(ctx context.Context, attachmentID uint) error
}

type service struct {
	repo       attachmentRepository
	complaints complaintFlagRepo
	store      fileStore
	maxBytes   int64
	logg       *logger.Logger
}

// NewService builds an attachment service with its dependencies.
func NewService(repo attachmentRepository, complaints complaintFlagRepo, store fileStore, maxBytes int64, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attachment repository required")
	}
	if complaints == nil {
		return nil, fmt.Errorf("complaint repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("file store required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, complaints: complaints, store: store, maxBytes: maxBytes, logg: logg}, nil
}

// Upload validates and stores a file for a complaint, then flips the
// complaint's has_attachments flag.
func (s *service) Upload(ctx context.Context, input UploadInput) (*AttachmentDTO, error) {
	name := strings.TrimSpace(input.Filename)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := allowedExtensions[ext]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file type %q is not allowed", ext))
	}
	if input.Size > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes))
	}
	if declared := normalizeContentType(input.ContentType); declared != "" {
		if !allowedMIMETypes[declared] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("content type %q is not allowed", declared))
		}
		mime = declared
	}

	complaint, err := s.complaints.FindByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load complaint")
	}
	if complaint == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}

	// cap the copy so a lying Content-Length cannot blow past the limit
	saved, err := s.store.Save(input.ComplaintID, name, io.LimitReader(input.Body, s.maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store attachment")
	}
	if saved.Size > s.maxBytes {
		_ = s.store.Remove(saved.Path)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.maxBytes))
	}

	row := &models.ComplaintAttachment{
		ComplaintID:      input.ComplaintID,
		Filename:         saved.Filename,
		OriginalFilename: name,
		FilePath:         saved.Path,
		FileSize:         saved.Size,
		MimeType:         mime,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		_ = s.store.Remove(saved.Path)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create attachment")
	}

	if !complaint.HasAttachments {
		if err := s.complaints.SetHasAttachments(ctx, input.ComplaintID, true); err != nil {
			s.logg.Error(s.logg.WithComplaintID(ctx, input.ComplaintID), "flagging attachments", err)
		}
	}

	s.logg.Info(s.logg.WithComplaintID(ctx, input.ComplaintID), "attachment uploaded")
	return FromModel(created), nil
}

// List returns a complaint's attachments.
func (s *service) List(ctx context.Context, complaintID uint) ([]AttachmentDTO, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load complaint")
	}
	if complaint == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}
	rows, err := s.repo.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attachments")
	}
	return FromModels(rows), nil
}

// OpenDownload streams a stored attachment.
func (s *service) OpenDownload(ctx context.Context, attachmentID uint) (*Download, error) {
	row, err := s.repo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attachment")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
	}
	body, err := s.store.Open(row.FilePath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open attachment")
	}
	return &Download{Attachment: FromModel(row), Body: body}, nil
}

// Delete removes the attachment row and its file, then recomputes the
// complaint's has_attachments flag.
func (s *service) Delete(ctx context.Context, attachmentID uint) error {
	row, err := s.repo.FindByID(ctx, attachmentID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attachment")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
	}

	if err := s.repo.Delete(ctx, attachmentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attachment")
	}
	if err := s.store.Remove(row.FilePath); err != nil {
		s.logg.Error(s.logg.WithComplaintID(ctx, row.ComplaintID), "removing attachment file", err)
	}

	remaining, err := s.repo.CountByComplaint(ctx, row.ComplaintID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count attachments")
	}
	if remaining == 0 {
		if err := s.complaints.SetHasAttachments(ctx, row.ComplaintID, false); err != nil {
			s.logg.Error(s.logg.WithComplaintID(ctx, row.ComplaintID), "clearing attachments flag", err)
		}
	}

	s.logg.Info(s.logg.WithComplaintID(ctx, row.ComplaintID), "attachment deleted")
	return nil
}
