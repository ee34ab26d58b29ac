package usecase

import (
	"context"
	"errors"
	"testing"

	"taskmatch/internal/domain/employee"

	"github.com/google/uuid"
)

func TestUploadCV_EnqueuesProcessing(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	cvs := newMemCVRepo()
	queue := &mockQueue{accept: true}
	uc := NewCVUsecase(cvs, employees, queue)

	doc, err := uc.UploadCV(context.Background(), e.ID, "cv.pdf", "Go and PostgreSQL experience")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.Status != employee.CVProcessing {
		t.Errorf("status = %q, want PROCESSING", doc.Status)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != doc.ID {
		t.Errorf("enqueued = %v, want [%s]", queue.enqueued, doc.ID)
	}
}

func TestUploadCV_QueueFullFailsDocument(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	cvs := newMemCVRepo()
	uc := NewCVUsecase(cvs, employees, &mockQueue{accept: false})

	_, err := uc.UploadCV(context.Background(), e.ID, "cv.pdf", "some text")
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	doc, err := cvs.GetLatestByEmployee(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.Status != employee.CVFailed {
		t.Errorf("status = %q, want FAILED", doc.Status)
	}
	if doc.ErrorMessage == "" {
		t.Errorf("expected error message on failed document")
	}
}

func TestUploadCV_EmptyText(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	uc := NewCVUsecase(newMemCVRepo(), employees, &mockQueue{accept: true})

	_, err := uc.UploadCV(context.Background(), e.ID, "cv.pdf", "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReanalyze_RequeuesLatest(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	cvs := newMemCVRepo()
	queue := &mockQueue{accept: true}
	uc := NewCVUsecase(cvs, employees, queue)

	uploaded, err := uc.UploadCV(context.Background(), e.ID, "cv.pdf", "text")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := cvs.SetStatus(context.Background(), uploaded.ID, employee.CVReady, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	doc, err := uc.Reanalyze(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.ID != uploaded.ID {
		t.Errorf("reanalyzed doc = %s, want latest upload %s", doc.ID, uploaded.ID)
	}
	if doc.Status != employee.CVProcessing {
		t.Errorf("status = %q, want PROCESSING", doc.Status)
	}
	if len(queue.enqueued) != 2 {
		t.Errorf("enqueued %d times, want 2", len(queue.enqueued))
	}
}

func TestReanalyze_NoUpload(t *testing.T) {
	employees := newMemEmployeeRepo()
	e := seedEmployee(employees)
	uc := NewCVUsecase(newMemCVRepo(), employees, &mockQueue{accept: true})

	_, err := uc.Reanalyze(context.Background(), e.ID)
	if !errors.Is(err, ErrCVNotFound) {
		t.Fatalf("expected ErrCVNotFound, got %v", err)
	}
}

func TestUploadCV_UnknownEmployee(t *testing.T) {
	uc := NewCVUsecase(newMemCVRepo(), newMemEmployeeRepo(), &mockQueue{accept: true})

	_, err := uc.UploadCV(context.Background(), uuid.New(), "cv.pdf", "text")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
