package dto

import (
	"time"

	"taskmatch/internal/domain/task"
	"taskmatch/internal/usecase"

	"github.com/google/uuid"
)

type AssignmentResponse struct {
	ID               uuid.UUID  `json:"id"`
	TaskID           uuid.UUID  `json:"task_id"`
	EmployeeID       uuid.UUID  `json:"employee_id"`
	SuitabilityScore float64    `json:"suitability_score"`
	Status           string     `json:"status"`
	AssignedAt       time.Time  `json:"assigned_at"`
	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

func NewAssignmentResponse(a task.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:               a.ID,
		TaskID:           a.TaskID,
		EmployeeID:       a.EmployeeID,
		SuitabilityScore: a.SuitabilityScore,
		Status:           string(a.Status),
		AssignedAt:       a.AssignedAt,
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
	}
}

type TaskResponse struct {
	ID             uuid.UUID           `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       string              `json:"priority"`
	Status         string              `json:"status"`
	RequiredSkills []string            `json:"required_skills"`
	CreatedBy      uuid.UUID           `json:"created_by"`
	ProjectID      *uuid.UUID          `json:"project_id"`
	StartDate      *time.Time          `json:"start_date"`
	DueDate        *time.Time          `json:"due_date"`
	Assignment     *AssignmentResponse `json:"assignment"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func NewTaskResponse(d usecase.TaskDetail) TaskResponse {
	skills := d.Task.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	res := TaskResponse{
		ID:             d.Task.ID,
		Title:          d.Task.Title,
		Description:    d.Task.Description,
		Priority:       string(d.Task.Priority),
		Status:         string(d.Task.Status),
		RequiredSkills: skills,
		CreatedBy:      d.Task.CreatedBy,
		ProjectID:      d.Task.ProjectID,
		StartDate:      d.Task.StartDate,
		DueDate:        d.Task.DueDate,
		CreatedAt:      d.Task.CreatedAt,
		UpdatedAt:      d.Task.UpdatedAt,
	}
	if d.Assignment != nil {
		a := NewAssignmentResponse(*d.Assignment)
		res.Assignment = &a
	}
	return res
}

type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ManagerID   uuid.UUID `json:"manager_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProjectResponse(p task.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
