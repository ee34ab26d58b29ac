package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskFilter struct {
	Status    *task.Status
	Priority  *matching.Priority
	ProjectID *uuid.UUID
	CreatedBy *uuid.UUID
}

type TaskRepository interface {
	Create(ctx context.Context, t task.Task) (task.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (task.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]task.Task, error)
	ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]task.Task, error)
	Update(ctx context.Context, t task.Task) (task.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[task.Status]int, error)
}

type PostgresTaskRepository struct {
	db database.DB
}

func NewPostgresTaskRepository(db database.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const (
	taskColumns  = `id, title, COALESCE(description, ''), priority, status, created_by, project_id, start_date, due_date, created_at, updated_at`
	taskColumnsT = `t.id, t.title, COALESCE(t.description, ''), t.priority, t.status, t.created_by, t.project_id, t.start_date, t.due_date, t.created_at, t.updated_at`
)

func (r *PostgresTaskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return task.Task{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO tasks (id, title, description, priority, status, created_by, project_id, start_date, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, string(t.Priority), string(t.Status), t.CreatedBy, t.ProjectID, t.StartDate, t.DueDate,
	)
	if err != nil {
		return task.Task{}, err
	}

	if err := insertTaskSkills(ctx, tx, t.ID, t.RequiredSkills); err != nil {
		return task.Task{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return task.Task{}, err
	}
	return r.GetByID(ctx, t.ID)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return task.Task{}, err
	}

	skills, err := r.taskSkills(ctx, []uuid.UUID{id})
	if err != nil {
		return task.Task{}, err
	}
	t.RequiredSkills = skills[id]
	return t, nil
}

func (r *PostgresTaskRepository) List(ctx context.Context, filter TaskFilter) ([]task.Task, error) {
	conds := []string{}
	args := []any{}
	add := func(clause string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(clause, len(args)))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.Priority != nil {
		add("priority = $%d", string(*filter.Priority))
	}
	if filter.ProjectID != nil {
		add("project_id = $%d", *filter.ProjectID)
	}
	if filter.CreatedBy != nil {
		add("created_by = $%d", *filter.CreatedBy)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectTasks(ctx, rows)
}

func (r *PostgresTaskRepository) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]task.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumnsT+`
		 FROM tasks t
		 JOIN task_assignments ta ON ta.task_id = t.id
		 WHERE ta.employee_id = $1 AND ta.status = ANY($2)
		 ORDER BY t.created_at DESC`,
		employeeID, task.ActiveAssignmentStatuses,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectTasks(ctx, rows)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t task.Task) (task.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return task.Task{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	affected, err := tx.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, priority = $3, project_id = $4, start_date = $5, due_date = $6, updated_at = NOW()
		 WHERE id = $7`,
		t.Title, t.Description, string(t.Priority), t.ProjectID, t.StartDate, t.DueDate, t.ID,
	)
	if err != nil {
		return task.Task{}, err
	}
	if affected == 0 {
		return task.Task{}, ErrTaskNotFound
	}

	_, err = tx.Exec(ctx, `DELETE FROM task_skills WHERE task_id = $1`, t.ID)
	if err != nil {
		return task.Task{}, err
	}
	if err := insertTaskSkills(ctx, tx, t.ID, t.RequiredSkills); err != nil {
		return task.Task{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return task.Task{}, err
	}
	return r.GetByID(ctx, t.ID)
}

func (r *PostgresTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) CountByStatus(ctx context.Context) (map[task.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[task.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[task.Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTaskRepository) collectTasks(ctx context.Context, rows database.Rows) ([]task.Task, error) {
	out := make([]task.Task, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		t, err := scanTaskRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := r.taskSkills(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].RequiredSkills = skills[out[i].ID]
	}
	return out, nil
}

func (r *PostgresTaskRepository) taskSkills(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT task_id, skill_name FROM task_skills
		 WHERE task_id = ANY($1)
		 ORDER BY task_id, position ASC`,
		taskIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID uuid.UUID
		var name string
		if err := rows.Scan(&taskID, &name); err != nil {
			return nil, err
		}
		out[taskID] = append(out[taskID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func insertTaskSkills(ctx context.Context, tx database.Tx, taskID uuid.UUID, skills []string) error {
	for i, name := range skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO task_skills (task_id, skill_name, position)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (task_id, skill_name) DO NOTHING`,
			taskID, name, i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanTask(row database.Row) (task.Task, error) {
	var t task.Task
	var priority, status string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &t.CreatedBy, &t.ProjectID, &t.StartDate, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if isNoRows(err) {
			return task.Task{}, ErrTaskNotFound
		}
		return task.Task{}, err
	}
	t.Priority = matching.Priority(priority)
	t.Status = task.Status(status)
	return t, nil
}

func scanTaskRows(rows database.Rows) (task.Task, error) {
	var t task.Task
	var priority, status string
	if err := rows.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &t.CreatedBy, &t.ProjectID, &t.StartDate, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return task.Task{}, err
	}
	t.Priority = matching.Priority(priority)
	t.Status = task.Status(status)
	return t, nil
}
