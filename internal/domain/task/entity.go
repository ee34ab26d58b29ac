package task

import (
	"time"

	"taskmatch/internal/domain/matching"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusUnassigned Status = "UNASSIGNED"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusUnassigned, StatusAssigned, StatusInProgress,
		StatusBlocked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ActiveAssignmentStatuses are the assignment states that count toward an
// employee's workload.
var ActiveAssignmentStatuses = []string{
	string(StatusAssigned), string(StatusInProgress), string(StatusBlocked),
}

type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Priority    matching.Priority
	Status      Status
	CreatedBy   uuid.UUID
	ProjectID   *uuid.UUID
	StartDate   *time.Time
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// RequiredSkills keeps insertion order for display; scoring ignores
	// order.
	RequiredSkills []string
}

type Project struct {
	ID          uuid.UUID
	Title       string
	Description string
	ManagerID   uuid.UUID
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Assignment struct {
	ID               uuid.UUID
	TaskID           uuid.UUID
	EmployeeID       uuid.UUID
	SuitabilityScore float64
	Status           Status
	AssignedAt       time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
}
