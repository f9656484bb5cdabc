package companies

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// CompanyDTO exposes company data in API responses.
type CompanyDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps the persisted company into a DTO.
func FromModel(m *models.Company) *CompanyDTO {
	if m == nil {
		return nil
	}
	return &CompanyDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// FromModels maps a slice of companies into DTOs.
func FromModels(rows []models.Company) []CompanyDTO {
	out := make([]CompanyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
