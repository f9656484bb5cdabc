package responsibles

import (
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
)

// PersonDTO exposes a responsible person directory entry.
type PersonDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Department *string   `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromModel maps the persisted person into a DTO.
func FromModel(m *models.ResponsiblePerson) *PersonDTO {
	if m == nil {
		return nil
	}
	return &PersonDTO{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Department: m.Department,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

// FromModels maps a slice of persons into DTOs.
func FromModels(rows []models.ResponsiblePerson) []PersonDTO {
	out := make([]PersonDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
