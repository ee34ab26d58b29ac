package usecase

import (
	"context"
	"errors"
	"testing"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

func newEmployeeFixture() (*Employee, *memEmployeeRepo, *memRecordRepo, *memAssignmentRepo, *memCVRepo) {
	employees := newMemEmployeeRepo()
	records := newMemRecordRepo()
	assignments := newMemAssignmentRepo()
	cvs := newMemCVRepo()
	uc := NewEmployeeUsecase(employees, records, assignments, cvs)
	return uc, employees, records, assignments, cvs
}

func TestCreateEmployee_NormalizesEmail(t *testing.T) {
	uc, _, _, _, _ := newEmployeeFixture()

	summary, err := uc.CreateEmployee(context.Background(), CreateEmployeeInput{
		UserID: uuid.New(),
		Name:   "  Alice  ",
		Email:  " Alice@Example.COM ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Employee.Name != "Alice" {
		t.Errorf("name = %q, want Alice", summary.Employee.Name)
	}
	if summary.Employee.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", summary.Employee.Email)
	}
	if summary.CVStatus != employee.CVNotUploaded {
		t.Errorf("cv status = %q, want NOT_UPLOADED", summary.CVStatus)
	}
}

func TestGetEmployee_SummaryReflectsWorkloadAndCV(t *testing.T) {
	uc, employees, records, assignments, cvs := newEmployeeFixture()
	e := seedEmployee(employees)

	records.records[e.ID] = []employee.SkillRecord{
		{ID: uuid.New(), EmployeeID: e.ID, Name: "Go", Source: employee.SourceManual, Confidence: 1},
	}
	assignments.assignments[uuid.New()] = task.Assignment{
		ID: uuid.New(), TaskID: uuid.New(), EmployeeID: e.ID, Status: task.StatusInProgress,
	}
	doc := employee.CVDocument{ID: uuid.New(), EmployeeID: e.ID, Status: employee.CVReady}
	cvs.docs[doc.ID] = doc

	summary, err := uc.GetEmployee(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.ActiveTasks != 1 {
		t.Errorf("active tasks = %d, want 1", summary.ActiveTasks)
	}
	if summary.WorkloadPct != 20 {
		t.Errorf("workload = %v, want 20", summary.WorkloadPct)
	}
	if len(summary.Skills) != 1 {
		t.Errorf("skills = %d, want 1", len(summary.Skills))
	}
	if summary.CVStatus != employee.CVReady {
		t.Errorf("cv status = %q, want READY", summary.CVStatus)
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	uc, _, _, _, _ := newEmployeeFixture()

	_, err := uc.GetEmployee(context.Background(), uuid.New())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestUpdateEmployee_RejectsEmptyName(t *testing.T) {
	uc, employees, _, _, _ := newEmployeeFixture()
	e := seedEmployee(employees)

	empty := "  "
	_, err := uc.UpdateEmployee(context.Background(), e.ID, UpdateEmployeeInput{Name: &empty})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetEmployeeByUser(t *testing.T) {
	uc, employees, _, _, _ := newEmployeeFixture()
	e := seedEmployee(employees)

	summary, err := uc.GetEmployeeByUser(context.Background(), e.UserID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Employee.ID != e.ID {
		t.Errorf("employee = %s, want %s", summary.Employee.ID, e.ID)
	}

	_, err = uc.GetEmployeeByUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestAnalyzeDocument(t *testing.T) {
	uc, _, _, _, _ := newEmployeeFixture()

	text := "Jane Smith\nSenior Backend Engineer\njane.smith@example.com\n\nSkills: Go, PostgreSQL, Docker"
	profile, err := uc.AnalyzeDocument(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if profile.Email != "jane.smith@example.com" {
		t.Errorf("email = %q", profile.Email)
	}
	if profile.Role != "Senior Backend Engineer" {
		t.Errorf("role = %q", profile.Role)
	}
	names := map[string]bool{}
	for _, s := range profile.Skills {
		names[s.Name] = true
	}
	for _, want := range []string{"Go", "PostgreSQL", "Docker"} {
		if !names[want] {
			t.Errorf("missing skill %q in %v", want, names)
		}
	}

	if _, err := uc.AnalyzeDocument(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
