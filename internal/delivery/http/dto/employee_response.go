package dto

import (
	"time"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/usecase"

	"github.com/google/uuid"
)

type SkillRecordResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewSkillRecordResponse(rec employee.SkillRecord) SkillRecordResponse {
	return SkillRecordResponse{
		ID:         rec.ID,
		Name:       rec.Name,
		Source:     string(rec.Source),
		Confidence: rec.Confidence,
		CreatedAt:  rec.CreatedAt,
	}
}

type EmployeeResponse struct {
	ID          uuid.UUID             `json:"id"`
	UserID      uuid.UUID             `json:"user_id"`
	ManagerID   *uuid.UUID            `json:"manager_id"`
	Name        string                `json:"name"`
	Title       string                `json:"title"`
	Email       string                `json:"email"`
	ActiveTasks int                   `json:"active_tasks"`
	WorkloadPct float64               `json:"workload_pct"`
	CVStatus    string                `json:"cv_status"`
	Skills      []SkillRecordResponse `json:"skills"`
	CreatedAt   time.Time             `json:"created_at"`
}

func NewEmployeeResponse(s usecase.EmployeeSummary) EmployeeResponse {
	skills := make([]SkillRecordResponse, 0, len(s.Skills))
	for _, rec := range s.Skills {
		skills = append(skills, NewSkillRecordResponse(rec))
	}
	return EmployeeResponse{
		ID:          s.Employee.ID,
		UserID:      s.Employee.UserID,
		ManagerID:   s.Employee.ManagerID,
		Name:        s.Employee.Name,
		Title:       s.Employee.Title,
		Email:       s.Employee.Email,
		ActiveTasks: s.ActiveTasks,
		WorkloadPct: s.WorkloadPct,
		CVStatus:    string(s.CVStatus),
		Skills:      skills,
		CreatedAt:   s.Employee.CreatedAt,
	}
}

type CVDocumentResponse struct {
	ID           uuid.UUID  `json:"id"`
	EmployeeID   uuid.UUID  `json:"employee_id"`
	Filename     string     `json:"filename"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
}

func NewCVDocumentResponse(doc employee.CVDocument) CVDocumentResponse {
	return CVDocumentResponse{
		ID:           doc.ID,
		EmployeeID:   doc.EmployeeID,
		Filename:     doc.Filename,
		Status:       string(doc.Status),
		ErrorMessage: doc.ErrorMessage,
		UploadedAt:   doc.UploadedAt,
		ProcessedAt:  doc.ProcessedAt,
	}
}
