package usecase

import (
	"context"
	"errors"
	"strings"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/skill"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSkillAlreadyExists = errors.New("skill already exists")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidConfidence  = errors.New("confidence must be between 0 and 1")
)

type AddSkillRecordInput struct {
	Name       string
	Confidence float64
}

type SkillRecordUsecase interface {
	ListSkills(ctx context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error)
	AddManualSkill(ctx context.Context, employeeID uuid.UUID, in AddSkillRecordInput) (employee.SkillRecord, error)
	DeleteSkill(ctx context.Context, employeeID uuid.UUID, recordID uuid.UUID) error
}

type SkillRecords struct {
	records   repository.SkillRecordRepository
	employees repository.EmployeeRepository
}

func NewSkillRecordUsecase(records repository.SkillRecordRepository, employees repository.EmployeeRepository) *SkillRecords {
	return &SkillRecords{records: records, employees: employees}
}

func (u *SkillRecords) ListSkills(ctx context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error) {
	if employeeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	recs, err := u.records.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}
	return recs, nil
}

func (u *SkillRecords) AddManualSkill(ctx context.Context, employeeID uuid.UUID, in AddSkillRecordInput) (employee.SkillRecord, error) {
	if employeeID == uuid.Nil {
		return employee.SkillRecord{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return employee.SkillRecord{}, ErrInvalidInput
	}
	confidence := in.Confidence
	if confidence == 0 {
		confidence = 1.0
	}
	if confidence < 0 || confidence > 1 {
		return employee.SkillRecord{}, ErrInvalidConfidence
	}

	if _, err := u.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return employee.SkillRecord{}, ErrEmployeeNotFound
		}
		return employee.SkillRecord{}, ErrInternal
	}

	display := skill.DisplayName(name)

	existing, err := u.records.ListByEmployee(ctx, employeeID)
	if err != nil {
		return employee.SkillRecord{}, ErrInternal
	}
	for _, rec := range existing {
		if rec.Source == employee.SourceManual && skill.NormalizeKey(rec.Name) == skill.NormalizeKey(name) {
			return employee.SkillRecord{}, ErrSkillAlreadyExists
		}
	}

	created, err := u.records.Create(ctx, employee.SkillRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Name:       display,
		Source:     employee.SourceManual,
		Confidence: confidence,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return employee.SkillRecord{}, ErrSkillAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return employee.SkillRecord{}, ErrEmployeeNotFound
		}
		return employee.SkillRecord{}, ErrInternal
	}
	return created, nil
}

func (u *SkillRecords) DeleteSkill(ctx context.Context, employeeID uuid.UUID, recordID uuid.UUID) error {
	if employeeID == uuid.Nil || recordID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.records.Delete(ctx, recordID, employeeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillRecordNotFound):
			return ErrSkillNotFound
		case errors.Is(err, repository.ErrSkillRecordForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
