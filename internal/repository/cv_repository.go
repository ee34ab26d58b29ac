package repository

import (
	"context"
	"errors"
	"time"

	"taskmatch/internal/database"
	"taskmatch/internal/domain/employee"

	"github.com/google/uuid"
)

var ErrCVNotFound = errors.New("cv document not found")

type CVRepository interface {
	Create(ctx context.Context, doc employee.CVDocument) (employee.CVDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (employee.CVDocument, error)
	GetLatestByEmployee(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error)
	ListByStatus(ctx context.Context, status employee.CVStatus, limit int) ([]employee.CVDocument, error)
	SetStatus(ctx context.Context, id uuid.UUID, status employee.CVStatus, errorMessage string) error
}

type PostgresCVRepository struct {
	db database.DB
}

func NewPostgresCVRepository(db database.DB) *PostgresCVRepository {
	return &PostgresCVRepository{db: db}
}

const cvColumns = `id, employee_id, filename, extracted_text, status, COALESCE(error_message, ''), uploaded_at, processed_at`

func (r *PostgresCVRepository) Create(ctx context.Context, doc employee.CVDocument) (employee.CVDocument, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cv_documents (id, employee_id, filename, extracted_text, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		doc.ID, doc.EmployeeID, doc.Filename, doc.ExtractedText, string(doc.Status),
	)
	if err != nil {
		return employee.CVDocument{}, err
	}
	return r.GetByID(ctx, doc.ID)
}

func (r *PostgresCVRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.CVDocument, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cvColumns+` FROM cv_documents WHERE id = $1`, id)
	return scanCV(row)
}

func (r *PostgresCVRepository) GetLatestByEmployee(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+cvColumns+` FROM cv_documents
		 WHERE employee_id = $1
		 ORDER BY uploaded_at DESC
		 LIMIT 1`,
		employeeID,
	)
	return scanCV(row)
}

func (r *PostgresCVRepository) ListByStatus(ctx context.Context, status employee.CVStatus, limit int) ([]employee.CVDocument, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+cvColumns+` FROM cv_documents
		 WHERE status = $1
		 ORDER BY uploaded_at ASC
		 LIMIT $2`,
		string(status), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.CVDocument, 0)
	for rows.Next() {
		var doc employee.CVDocument
		var st string
		if err := rows.Scan(&doc.ID, &doc.EmployeeID, &doc.Filename, &doc.ExtractedText, &st, &doc.ErrorMessage, &doc.UploadedAt, &doc.ProcessedAt); err != nil {
			return nil, err
		}
		doc.Status = employee.CVStatus(st)
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCVRepository) SetStatus(ctx context.Context, id uuid.UUID, status employee.CVStatus, errorMessage string) error {
	var processedAt *time.Time
	if status == employee.CVReady || status == employee.CVFailed {
		now := time.Now().UTC()
		processedAt = &now
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE cv_documents
		 SET status = $1, error_message = NULLIF($2, ''), processed_at = $3
		 WHERE id = $4`,
		string(status), errorMessage, processedAt, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCVNotFound
	}
	return nil
}

func scanCV(row database.Row) (employee.CVDocument, error) {
	var doc employee.CVDocument
	var status string
	if err := row.Scan(&doc.ID, &doc.EmployeeID, &doc.Filename, &doc.ExtractedText, &status, &doc.ErrorMessage, &doc.UploadedAt, &doc.ProcessedAt); err != nil {
		if isNoRows(err) {
			return employee.CVDocument{}, ErrCVNotFound
		}
		return employee.CVDocument{}, err
	}
	doc.Status = employee.CVStatus(status)
	return doc, nil
}
