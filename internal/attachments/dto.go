package attachments

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// AttachmentDTO exposes attachment metadata. File bytes are served
// separately by the download endpoint.
type AttachmentDTO struct {
	ID               uint      `json:"id"`
	ComplaintID      uint      `json:"complaint_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	CreatedAt        time.Time `json:"created_at"`
}

// FromModel maps the persisted attachment into a DTO.
func FromModel(m *models.ComplaintAttachment) *AttachmentDTO {
	if m == nil {
		return nil
	}
	return &AttachmentDTO{
		ID:               m.ID,
		ComplaintID:      m.ComplaintID,
		Filename:         m.Filename,
		OriginalFilename: m.OriginalFilename,
		FileSize:         m.FileSize,
		MimeType:         m.MimeType,
		CreatedAt:        m.CreatedAt,
	}
}

// FromModels maps a slice of attachments into DTOs.
func FromModels(rows []models.ComplaintAttachment) []AttachmentDTO {
	out := make([]AttachmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
