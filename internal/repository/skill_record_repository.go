package repository

import (
	"context"
	"errors"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/employee"

	"github.com/google/uuid"
)

var (
	ErrSkillRecordNotFound  = errors.New("skill record not found")
	ErrSkillRecordForbidden = errors.New("forbidden")
)

type SkillRecordRepository interface {
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error)
	ListByEmployees(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]employee.SkillRecord, error)
	Create(ctx context.Context, rec employee.SkillRecord) (employee.SkillRecord, error)
	Delete(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error
	ReplaceBySource(ctx context.Context, employeeID uuid.UUID, source employee.SkillSource, recs []employee.SkillRecord) error
}

type PostgresSkillRecordRepository struct {
	db database.DB
}

func NewPostgresSkillRecordRepository(db database.DB) *PostgresSkillRecordRepository {
	return &PostgresSkillRecordRepository{db: db}
}

const skillRecordColumns = `id, employee_id, name, source, confidence, created_at`

func (r *PostgresSkillRecordRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillRecordColumns+` FROM skill_records
		 WHERE employee_id = $1
		 ORDER BY confidence DESC, name ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkillRecords(rows)
}

func (r *PostgresSkillRecordRepository) ListByEmployees(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]employee.SkillRecord, error) {
	out := make(map[uuid.UUID][]employee.SkillRecord, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+skillRecordColumns+` FROM skill_records
		 WHERE employee_id = ANY($1)
		 ORDER BY employee_id, confidence DESC, name ASC`,
		employeeIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs, err := collectSkillRecords(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		out[rec.EmployeeID] = append(out[rec.EmployeeID], rec)
	}
	return out, nil
}

func (r *PostgresSkillRecordRepository) Create(ctx context.Context, rec employee.SkillRecord) (employee.SkillRecord, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_records (id, employee_id, name, source, confidence)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.EmployeeID, rec.Name, string(rec.Source), rec.Confidence,
	)
	if err != nil {
		return employee.SkillRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT `+skillRecordColumns+` FROM skill_records WHERE id = $1`, rec.ID)
	var created employee.SkillRecord
	var source string
	if err := row.Scan(&created.ID, &created.EmployeeID, &created.Name, &source, &created.Confidence, &created.CreatedAt); err != nil {
		return employee.SkillRecord{}, err
	}
	created.Source = employee.SkillSource(source)
	return created, nil
}

func (r *PostgresSkillRecordRepository) Delete(ctx context.Context, id uuid.UUID, employeeID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT employee_id FROM skill_records WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if isNoRows(err) {
			return ErrSkillRecordNotFound
		}
		return err
	}
	if owner != employeeID {
		return ErrSkillRecordForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM skill_records WHERE id = $1`, id)
	return err
}

// ReplaceBySource atomically swaps all records of one source for an
// employee. Used when a re-uploaded CV supersedes earlier extraction
// results.
func (r *PostgresSkillRecordRepository) ReplaceBySource(ctx context.Context, employeeID uuid.UUID, source employee.SkillSource, recs []employee.SkillRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM skill_records WHERE employee_id = $1 AND source = $2`,
		employeeID, string(source),
	)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		_, err = tx.Exec(ctx,
			`INSERT INTO skill_records (id, employee_id, name, source, confidence)
			 VALUES ($1, $2, $3, $4, $5)`,
			rec.ID, employeeID, rec.Name, string(source), rec.Confidence,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func collectSkillRecords(rows database.Rows) ([]employee.SkillRecord, error) {
	out := make([]employee.SkillRecord, 0)
	for rows.Next() {
		var rec employee.SkillRecord
		var source string
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Name, &source, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Source = employee.SkillSource(source)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
