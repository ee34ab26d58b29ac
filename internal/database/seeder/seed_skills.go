package seeder

import (
	"context"
	"fmt"

	"taskmatch/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Python", Category: "Programming Language"},
		{Name: "Go", Category: "Programming Language"},
		{Name: "Java", Category: "Programming Language"},
		{Name: "JavaScript", Category: "Programming Language"},
		{Name: "TypeScript", Category: "Programming Language"},
		{Name: "Rust", Category: "Programming Language"},
		{Name: "React", Category: "Web"},
		{Name: "Vue", Category: "Web"},
		{Name: "Angular", Category: "Web"},
		{Name: "Django", Category: "Web"},
		{Name: "FastAPI", Category: "Web"},
		{Name: "Node.js", Category: "Web"},
		{Name: "SQL", Category: "Database"},
		{Name: "PostgreSQL", Category: "Database"},
		{Name: "MySQL", Category: "Database"},
		{Name: "MongoDB", Category: "Database"},
		{Name: "Redis", Category: "Database"},
		{Name: "Elasticsearch", Category: "Database"},
		{Name: "AWS", Category: "Cloud"},
		{Name: "Azure", Category: "Cloud"},
		{Name: "GCP", Category: "Cloud"},
		{Name: "Docker", Category: "DevOps"},
		{Name: "Kubernetes", Category: "DevOps"},
		{Name: "Terraform", Category: "DevOps"},
		{Name: "CI/CD", Category: "DevOps"},
		{Name: "Machine Learning", Category: "Data"},
		{Name: "Data Analysis", Category: "Data"},
		{Name: "Pandas", Category: "Data"},
		{Name: "Kafka", Category: "Messaging"},
		{Name: "RabbitMQ", Category: "Messaging"},
		{Name: "REST", Category: "Architecture"},
		{Name: "GraphQL", Category: "Architecture"},
		{Name: "Microservices", Category: "Architecture"},
		{Name: "Agile", Category: "Process"},
		{Name: "Scrum", Category: "Process"},
		{Name: "Project Management", Category: "Process"},
	}

	err := database.WithinTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
				it.Name,
				it.Category,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	return nil
}
