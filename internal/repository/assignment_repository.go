package repository

import (
	"context"
	"errors"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type AssignmentRepository interface {
	// Assign cancels any active assignment on the task and records the new
	// one, moving the task to ASSIGNED, all in one transaction.
	Assign(ctx context.Context, a task.Assignment) (task.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (task.Assignment, error)
	GetActiveByTask(ctx context.Context, taskID uuid.UUID) (task.Assignment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]task.Assignment, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]task.Assignment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error
	ActiveCounts(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID]int, error)
	ActiveCountByEmployee(ctx context.Context, employeeID uuid.UUID) (int, error)
}

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

const assignmentColumns = `id, task_id, employee_id, suitability_score, status, assigned_at, started_at, completed_at`

func (r *PostgresAssignmentRepository) Assign(ctx context.Context, a task.Assignment) (task.Assignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return task.Assignment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`UPDATE task_assignments
		 SET status = $1
		 WHERE task_id = $2 AND status = ANY($3)`,
		string(task.StatusCancelled), a.TaskID, task.ActiveAssignmentStatuses,
	)
	if err != nil {
		return task.Assignment{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO task_assignments (id, task_id, employee_id, suitability_score, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.TaskID, a.EmployeeID, a.SuitabilityScore, string(task.StatusAssigned),
	)
	if err != nil {
		return task.Assignment{}, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(task.StatusAssigned), a.TaskID,
	)
	if err != nil {
		return task.Assignment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return task.Assignment{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Assignment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM task_assignments WHERE id = $1`, id)
	return scanAssignment(row)
}

func (r *PostgresAssignmentRepository) GetActiveByTask(ctx context.Context, taskID uuid.UUID) (task.Assignment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM task_assignments
		 WHERE task_id = $1 AND status = ANY($2)
		 ORDER BY assigned_at DESC
		 LIMIT 1`,
		taskID, task.ActiveAssignmentStatuses,
	)
	return scanAssignment(row)
}

func (r *PostgresAssignmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]task.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM task_assignments
		 WHERE task_id = $1
		 ORDER BY assigned_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *PostgresAssignmentRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]task.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM task_assignments
		 WHERE employee_id = $1
		 ORDER BY assigned_at DESC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func (r *PostgresAssignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error {
	query := `UPDATE task_assignments SET status = $1 WHERE id = $2`
	switch status {
	case task.StatusInProgress:
		query = `UPDATE task_assignments SET status = $1, started_at = COALESCE(started_at, NOW()) WHERE id = $2`
	case task.StatusCompleted:
		query = `UPDATE task_assignments SET status = $1, completed_at = NOW() WHERE id = $2`
	}

	affected, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *PostgresAssignmentRepository) ActiveCounts(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT employee_id, COUNT(*) FROM task_assignments
		 WHERE employee_id = ANY($1) AND status = ANY($2)
		 GROUP BY employee_id`,
		employeeIDs, task.ActiveAssignmentStatuses,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		out[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssignmentRepository) ActiveCountByEmployee(ctx context.Context, employeeID uuid.UUID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM task_assignments
		 WHERE employee_id = $1 AND status = ANY($2)`,
		employeeID, task.ActiveAssignmentStatuses,
	)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanAssignment(row database.Row) (task.Assignment, error) {
	var a task.Assignment
	var status string
	if err := row.Scan(&a.ID, &a.TaskID, &a.EmployeeID, &a.SuitabilityScore, &status, &a.AssignedAt, &a.StartedAt, &a.CompletedAt); err != nil {
		if isNoRows(err) {
			return task.Assignment{}, ErrAssignmentNotFound
		}
		return task.Assignment{}, err
	}
	a.Status = task.Status(status)
	return a, nil
}

func collectAssignments(rows database.Rows) ([]task.Assignment, error) {
	out := make([]task.Assignment, 0)
	for rows.Next() {
		var a task.Assignment
		var status string
		if err := rows.Scan(&a.ID, &a.TaskID, &a.EmployeeID, &a.SuitabilityScore, &status, &a.AssignedAt, &a.StartedAt, &a.CompletedAt); err != nil {
			return nil, err
		}
		a.Status = task.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
