package repository

import (
	"context"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.CatalogEntry, error)
	UpsertSkill(ctx context.Context, name, category string) (skill.CatalogEntry, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.CatalogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(category, ''), created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.CatalogEntry, 0)
	for rows.Next() {
		var s skill.CatalogEntry
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) UpsertSkill(ctx context.Context, name, category string) (skill.CatalogEntry, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category)
		 VALUES ($1, $2, NULLIF($3, ''))
		 ON CONFLICT (name) DO UPDATE SET category = COALESCE(EXCLUDED.category, skills.category)
		 RETURNING id, name, COALESCE(category, ''), created_at`,
		uuid.New(), name, category,
	)

	var s skill.CatalogEntry
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		return skill.CatalogEntry{}, err
	}
	return s, nil
}
