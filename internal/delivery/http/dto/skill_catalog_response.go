package dto

import (
	"time"

	"taskmatch/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillCatalogResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSkillCatalogResponse(s skill.CatalogEntry) SkillCatalogResponse {
	return SkillCatalogResponse{ID: s.ID, Name: s.Name, Category: s.Category, CreatedAt: s.CreatedAt}
}
