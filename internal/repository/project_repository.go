package repository

import (
	"context"
	"errors"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(ctx context.Context, p task.Project) (task.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (task.Project, error)
	List(ctx context.Context) ([]task.Project, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, title, COALESCE(description, ''), manager_id, status, created_at, updated_at`

func (r *PostgresProjectRepository) Create(ctx context.Context, p task.Project) (task.Project, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO projects (id, title, description, manager_id, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Title, p.Description, p.ManagerID, p.Status,
	)
	if err != nil {
		return task.Project{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	var p task.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ManagerID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return task.Project{}, ErrProjectNotFound
		}
		return task.Project{}, err
	}
	return p, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context) ([]task.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]task.Project, 0)
	for rows.Next() {
		var p task.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ManagerID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
