package usecase

import (
	"context"
	"errors"
	"testing"

	"taskmatch/internal/domain/employee"

	"github.com/google/uuid"
)

func seedEmployee(repo *memEmployeeRepo) employee.Employee {
	e := employee.Employee{ID: uuid.New(), UserID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	repo.employees[e.ID] = e
	return e
}

func TestAddManualSkill_DefaultConfidenceAndDisplayName(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	uc := NewSkillRecordUsecase(newMemRecordRepo(), employees)

	rec, err := uc.AddManualSkill(context.Background(), e.ID, AddSkillRecordInput{Name: "postgresql"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", rec.Confidence)
	}
	if rec.Name != "PostgreSQL" {
		t.Errorf("name = %q, want PostgreSQL", rec.Name)
	}
	if rec.Source != employee.SourceManual {
		t.Errorf("source = %q, want MANUAL", rec.Source)
	}
}

func TestAddManualSkill_DuplicateViaAlias(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	uc := NewSkillRecordUsecase(newMemRecordRepo(), employees)

	if _, err := uc.AddManualSkill(context.Background(), e.ID, AddSkillRecordInput{Name: "Go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// "golang" normalizes to the same key as "Go".
	_, err := uc.AddManualSkill(context.Background(), e.ID, AddSkillRecordInput{Name: "golang"})
	if !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
}

func TestAddManualSkill_InvalidConfidence(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	uc := NewSkillRecordUsecase(newMemRecordRepo(), employees)

	_, err := uc.AddManualSkill(context.Background(), e.ID, AddSkillRecordInput{Name: "Go", Confidence: 1.5})
	if !errors.Is(err, ErrInvalidConfidence) {
		t.Fatalf("expected ErrInvalidConfidence, got %v", err)
	}
	_, err = uc.AddManualSkill(context.Background(), e.ID, AddSkillRecordInput{Name: "Go", Confidence: -0.1})
	if !errors.Is(err, ErrInvalidConfidence) {
		t.Fatalf("expected ErrInvalidConfidence, got %v", err)
	}
}

func TestAddManualSkill_UnknownEmployee(t *testing.T) {
	uc := NewSkillRecordUsecase(newMemRecordRepo(), newMemEmployeeRepo())

	_, err := uc.AddManualSkill(context.Background(), uuid.New(), AddSkillRecordInput{Name: "Go"})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDeleteSkill_OwnershipEnforced(t *testing.T) {
	employees := newMemEmployeeRepo()
	owner := seedEmployee(employees)
	other := employee.Employee{ID: uuid.New(), Name: "Bob", Email: "bob@example.com"}
	employees.employees[other.ID] = other

	records := newMemRecordRepo()
	uc := NewSkillRecordUsecase(records, employees)

	rec, err := uc.AddManualSkill(context.Background(), owner.ID, AddSkillRecordInput{Name: "Go"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := uc.DeleteSkill(context.Background(), other.ID, rec.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.DeleteSkill(context.Background(), owner.ID, rec.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.DeleteSkill(context.Background(), owner.ID, rec.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
