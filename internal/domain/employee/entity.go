package employee

import (
	"time"

	"github.com/google/uuid"
)

// Capacity is the number of active assignments that counts as a fully
// booked employee.
const Capacity = 5

type Employee struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ManagerID *uuid.UUID
	Name      string
	Title     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SkillRecord is one stored skill for an employee. CV-sourced records are
// superseded (deleted and recreated) on re-upload, never mutated.
type SkillRecord struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Name       string
	Source     SkillSource
	Confidence float64
	CreatedAt  time.Time
}

type SkillSource string

const (
	SourceCV        SkillSource = "CV"
	SourceManual    SkillSource = "MANUAL"
	SourcePortfolio SkillSource = "PORTFOLIO"
)

func (s SkillSource) Valid() bool {
	switch s {
	case SourceCV, SourceManual, SourcePortfolio:
		return true
	}
	return false
}

type CVStatus string

const (
	CVNotUploaded CVStatus = "NOT_UPLOADED"
	CVProcessing  CVStatus = "PROCESSING"
	CVReady       CVStatus = "READY"
	CVFailed      CVStatus = "FAILED"
)

// CVDocument holds the extracted text of an uploaded CV and its
// processing state. Binary parsing happens outside this service.
type CVDocument struct {
	ID            uuid.UUID
	EmployeeID    uuid.UUID
	Filename      string
	ExtractedText string
	Status        CVStatus
	ErrorMessage  string
	UploadedAt    time.Time
	ProcessedAt   *time.Time
}

// WorkloadPercent converts an active-assignment count into a workload
// percentage against Capacity, capped at 100.
func WorkloadPercent(activeAssignments int) float64 {
	if activeAssignments <= 0 {
		return 0
	}
	pct := float64(activeAssignments) / float64(Capacity) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
