package usecase

import (
	"context"
	"errors"
	"strings"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCVNotFound = errors.New("cv not found")
	ErrQueueFull  = errors.New("processing queue full")
)

// CVQueue hands uploaded documents to the extraction pipeline. Enqueue
// reports false when the pipeline cannot take more work right now.
type CVQueue interface {
	Enqueue(docID uuid.UUID) bool
}

type CVUsecase interface {
	UploadCV(ctx context.Context, employeeID uuid.UUID, filename, text string) (employee.CVDocument, error)
	LatestCV(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error)
	Reanalyze(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error)
}

type CV struct {
	cvs       repository.CVRepository
	employees repository.EmployeeRepository
	queue     CVQueue
}

func NewCVUsecase(cvs repository.CVRepository, employees repository.EmployeeRepository, queue CVQueue) *CV {
	return &CV{cvs: cvs, employees: employees, queue: queue}
}

func (u *CV) UploadCV(ctx context.Context, employeeID uuid.UUID, filename, text string) (employee.CVDocument, error) {
	if employeeID == uuid.Nil || strings.TrimSpace(text) == "" {
		return employee.CVDocument{}, ErrInvalidInput
	}

	if _, err := u.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return employee.CVDocument{}, ErrEmployeeNotFound
		}
		return employee.CVDocument{}, ErrInternal
	}

	doc, err := u.cvs.Create(ctx, employee.CVDocument{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		Filename:      strings.TrimSpace(filename),
		ExtractedText: text,
		Status:        employee.CVProcessing,
	})
	if err != nil {
		return employee.CVDocument{}, ErrInternal
	}

	if !u.queue.Enqueue(doc.ID) {
		_ = u.cvs.SetStatus(ctx, doc.ID, employee.CVFailed, "processing queue full")
		return employee.CVDocument{}, ErrQueueFull
	}

	return doc, nil
}

func (u *CV) LatestCV(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error) {
	if employeeID == uuid.Nil {
		return employee.CVDocument{}, ErrInvalidInput
	}
	doc, err := u.cvs.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return employee.CVDocument{}, ErrCVNotFound
		}
		return employee.CVDocument{}, ErrInternal
	}
	return doc, nil
}

// Reanalyze re-runs extraction against the most recent upload, without
// requiring the caller to resubmit the document.
func (u *CV) Reanalyze(ctx context.Context, employeeID uuid.UUID) (employee.CVDocument, error) {
	doc, err := u.LatestCV(ctx, employeeID)
	if err != nil {
		return employee.CVDocument{}, err
	}

	if err := u.cvs.SetStatus(ctx, doc.ID, employee.CVProcessing, ""); err != nil {
		return employee.CVDocument{}, ErrInternal
	}
	doc.Status = employee.CVProcessing

	if !u.queue.Enqueue(doc.ID) {
		_ = u.cvs.SetStatus(ctx, doc.ID, employee.CVFailed, "processing queue full")
		return employee.CVDocument{}, ErrQueueFull
	}
	return doc, nil
}
