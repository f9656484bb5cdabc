package parts

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// PartDTO exposes catalog part data in API responses.
type PartDTO struct {
	ID          uint      `json:"id"`
	PartNumber  string    `json:"part_number"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModel maps the persisted part into a DTO.
func FromModel(m *models.Part) *PartDTO {
	if m == nil {
		return nil
	}
	return &PartDTO{
		ID:          m.ID,
		PartNumber:  m.PartNumber,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// FromModels maps a slice of parts into DTOs.
func FromModels(rows []models.Part) []PartDTO {
	out := make([]PartDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
