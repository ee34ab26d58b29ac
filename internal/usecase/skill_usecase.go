package usecase

import (
	"context"

	"taskmatch/internal/domain/skill"
	"taskmatch/internal/repository"
)

type SkillCatalogUsecase interface {
	ListCatalog(ctx context.Context) ([]skill.CatalogEntry, error)
}

type SkillCatalog struct {
	skills repository.SkillRepository
}

func NewSkillCatalogUsecase(skills repository.SkillRepository) *SkillCatalog {
	return &SkillCatalog{skills: skills}
}

func (u *SkillCatalog) ListCatalog(ctx context.Context) ([]skill.CatalogEntry, error) {
	out, err := u.skills.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
