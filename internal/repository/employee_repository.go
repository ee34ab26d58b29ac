package repository

import (
	"context"
	"database/sql"
	"errors"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Create(ctx context.Context, e employee.Employee) (employee.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (employee.Employee, error)
	List(ctx context.Context, managerID *uuid.UUID) ([]employee.Employee, error)
	Update(ctx context.Context, e employee.Employee) (employee.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, user_id, manager_id, name, COALESCE(title, ''), email, created_at, updated_at`

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (id, user_id, manager_id, name, title, email)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.ManagerID, e.Name, e.Title, e.Email,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return r.GetByID(ctx, e.ID)
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (employee.Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE user_id = $1`, userID)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) List(ctx context.Context, managerID *uuid.UUID) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name ASC`
	args := []any{}
	if managerID != nil {
		query = `SELECT ` + employeeColumns + ` FROM employees WHERE manager_id = $1 ORDER BY name ASC`
		args = append(args, *managerID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.UserID, &e.ManagerID, &e.Name, &e.Title, &e.Email, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE employees
		 SET name = $1, title = $2, email = $3, manager_id = $4, updated_at = NOW()
		 WHERE id = $5`,
		e.Name, e.Title, e.Email, e.ManagerID, e.ID,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if affected == 0 {
		return employee.Employee{}, ErrEmployeeNotFound
	}
	return r.GetByID(ctx, e.ID)
}

func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row database.Row) (employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.UserID, &e.ManagerID, &e.Name, &e.Title, &e.Email, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}
