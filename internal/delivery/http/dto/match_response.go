package dto

import (
	"taskmatch/internal/domain/extract"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/usecase"

	"github.com/google/uuid"
)

type MatchResponse struct {
	EmployeeID     uuid.UUID `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	Title          string    `json:"title"`
	Score          float64   `json:"score"`
	MatchingSkills []string  `json:"matching_skills"`
	WorkloadPct    float64   `json:"workload_pct"`
}

func NewMatchResponse(m usecase.CandidateMatch) MatchResponse {
	skills := m.Result.MatchingSkills
	if skills == nil {
		skills = []string{}
	}
	return MatchResponse{
		EmployeeID:     m.Result.EmployeeID,
		EmployeeName:   m.Employee.Name,
		Title:          m.Employee.Title,
		Score:          m.Result.Score,
		MatchingSkills: skills,
		WorkloadPct:    m.Result.WorkloadPct,
	}
}

type SuggestionResponse struct {
	EmployeeID     uuid.UUID `json:"employee_id"`
	Score          float64   `json:"score"`
	MatchingSkills []string  `json:"matching_skills"`
	WorkloadPct    float64   `json:"workload_pct"`
}

func NewSuggestionResponse(r matching.MatchResult) SuggestionResponse {
	skills := r.MatchingSkills
	if skills == nil {
		skills = []string{}
	}
	return SuggestionResponse{
		EmployeeID:     r.EmployeeID,
		Score:          r.Score,
		MatchingSkills: skills,
		WorkloadPct:    r.WorkloadPct,
	}
}

type ExtractedSkillResponse struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

func NewExtractedSkillResponses(extracted []extract.Extracted) []ExtractedSkillResponse {
	out := make([]ExtractedSkillResponse, 0, len(extracted))
	for _, e := range extracted {
		out = append(out, ExtractedSkillResponse{Name: e.Name, Confidence: e.Confidence})
	}
	return out
}

// DocumentProfileResponse pre-fills the employee form from a pasted
// document.
type DocumentProfileResponse struct {
	Name   string                   `json:"name"`
	Email  string                   `json:"email"`
	Role   string                   `json:"role"`
	Skills []ExtractedSkillResponse `json:"skills"`
}

func NewDocumentProfileResponse(p usecase.DocumentProfile) DocumentProfileResponse {
	return DocumentProfileResponse{
		Name:   p.Name,
		Email:  p.Email,
		Role:   p.Role,
		Skills: NewExtractedSkillResponses(p.Skills),
	}
}
