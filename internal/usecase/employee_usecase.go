package usecase

import (
	"context"
	"errors"
	"strings"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/extract"
	"taskmatch/internal/parser"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email already in use")
)

type CreateEmployeeInput struct {
	UserID    uuid.UUID
	ManagerID *uuid.UUID
	Name      string
	Title     string
	Email     string
}

type UpdateEmployeeInput struct {
	Name      *string
	Title     *string
	Email     *string
	ManagerID *uuid.UUID
}

// DocumentProfile is what a pasted document yields for form pre-fill:
// best-effort contact details plus the extracted skills.
type DocumentProfile struct {
	Name   string
	Email  string
	Role   string
	Skills []extract.Extracted
}

// EmployeeSummary is an employee with the derived state the dashboard and
// matching views need.
type EmployeeSummary struct {
	Employee    employee.Employee
	Skills      []employee.SkillRecord
	ActiveTasks int
	WorkloadPct float64
	CVStatus    employee.CVStatus
}

type EmployeeUsecase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (EmployeeSummary, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (EmployeeSummary, error)
	GetEmployeeByUser(ctx context.Context, userID uuid.UUID) (EmployeeSummary, error)
	ListEmployees(ctx context.Context, managerID *uuid.UUID) ([]EmployeeSummary, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (EmployeeSummary, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	AnalyzeDocument(ctx context.Context, text string) (DocumentProfile, error)
}

type Employee struct {
	employees   repository.EmployeeRepository
	records     repository.SkillRecordRepository
	assignments repository.AssignmentRepository
	cvs         repository.CVRepository
}

func NewEmployeeUsecase(
	employees repository.EmployeeRepository,
	records repository.SkillRecordRepository,
	assignments repository.AssignmentRepository,
	cvs repository.CVRepository,
) *Employee {
	return &Employee{employees: employees, records: records, assignments: assignments, cvs: cvs}
}

func (u *Employee) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (EmployeeSummary, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return EmployeeSummary{}, ErrInvalidInput
	}

	created, err := u.employees.Create(ctx, employee.Employee{
		ID:        uuid.New(),
		UserID:    in.UserID,
		ManagerID: in.ManagerID,
		Name:      name,
		Title:     strings.TrimSpace(in.Title),
		Email:     email,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return EmployeeSummary{}, ErrEmailTaken
		}
		return EmployeeSummary{}, ErrInternal
	}

	return EmployeeSummary{Employee: created, Skills: []employee.SkillRecord{}, CVStatus: employee.CVNotUploaded}, nil
}

func (u *Employee) GetEmployee(ctx context.Context, id uuid.UUID) (EmployeeSummary, error) {
	if id == uuid.Nil {
		return EmployeeSummary{}, ErrEmployeeNotFound
	}
	e, err := u.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeSummary{}, ErrEmployeeNotFound
		}
		return EmployeeSummary{}, ErrInternal
	}
	return u.summarize(ctx, e)
}

func (u *Employee) GetEmployeeByUser(ctx context.Context, userID uuid.UUID) (EmployeeSummary, error) {
	e, err := u.employees.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeSummary{}, ErrEmployeeNotFound
		}
		return EmployeeSummary{}, ErrInternal
	}
	return u.summarize(ctx, e)
}

func (u *Employee) ListEmployees(ctx context.Context, managerID *uuid.UUID) ([]EmployeeSummary, error) {
	list, err := u.employees.List(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}

	recs, err := u.records.ListByEmployees(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}
	counts, err := u.assignments.ActiveCounts(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]EmployeeSummary, 0, len(list))
	for _, e := range list {
		skills := recs[e.ID]
		if skills == nil {
			skills = []employee.SkillRecord{}
		}
		out = append(out, EmployeeSummary{
			Employee:    e,
			Skills:      skills,
			ActiveTasks: counts[e.ID],
			WorkloadPct: employee.WorkloadPercent(counts[e.ID]),
			CVStatus:    u.cvStatus(ctx, e.ID),
		})
	}
	return out, nil
}

func (u *Employee) UpdateEmployee(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (EmployeeSummary, error) {
	e, err := u.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeSummary{}, ErrEmployeeNotFound
		}
		return EmployeeSummary{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return EmployeeSummary{}, ErrInvalidInput
		}
		e.Name = name
	}
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return EmployeeSummary{}, ErrInvalidInput
		}
		e.Email = email
	}
	if in.ManagerID != nil {
		e.ManagerID = in.ManagerID
	}

	updated, err := u.employees.Update(ctx, e)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return EmployeeSummary{}, ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return EmployeeSummary{}, ErrEmailTaken
		}
		return EmployeeSummary{}, ErrInternal
	}
	return u.summarize(ctx, updated)
}

func (u *Employee) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if err := u.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return ErrInternal
	}
	return nil
}

// AnalyzeDocument runs the detail heuristics and skill extraction over
// raw text without persisting anything.
func (u *Employee) AnalyzeDocument(_ context.Context, text string) (DocumentProfile, error) {
	if strings.TrimSpace(text) == "" {
		return DocumentProfile{}, ErrInvalidInput
	}
	details := parser.ExtractDetails(text)
	return DocumentProfile{
		Name:   details.Name,
		Email:  details.Email,
		Role:   details.Role,
		Skills: extract.Extract(text, extract.DefaultMinConfidence),
	}, nil
}

func (u *Employee) summarize(ctx context.Context, e employee.Employee) (EmployeeSummary, error) {
	skills, err := u.records.ListByEmployee(ctx, e.ID)
	if err != nil {
		return EmployeeSummary{}, ErrInternal
	}
	active, err := u.assignments.ActiveCountByEmployee(ctx, e.ID)
	if err != nil {
		return EmployeeSummary{}, ErrInternal
	}
	return EmployeeSummary{
		Employee:    e,
		Skills:      skills,
		ActiveTasks: active,
		WorkloadPct: employee.WorkloadPercent(active),
		CVStatus:    u.cvStatus(ctx, e.ID),
	}, nil
}

func (u *Employee) cvStatus(ctx context.Context, employeeID uuid.UUID) employee.CVStatus {
	doc, err := u.cvs.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		return employee.CVNotUploaded
	}
	return doc.Status
}
