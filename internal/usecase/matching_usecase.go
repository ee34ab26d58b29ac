package usecase

import (
	"context"
	"errors"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTaskNotOpen         = errors.New("task is not open for assignment")
	ErrEmployeeOverloaded  = errors.New("employee is at full capacity")
	ErrNoEligibleCandidate = errors.New("no eligible candidate")
)

const (
	// DefaultMatchLimit and DefaultMatchMinScore shape the explicit
	// match-listing endpoint.
	DefaultMatchLimit    = 10
	DefaultMatchMinScore = 50.0

	// SuggestionLimit and SuggestionMinScore shape the inline suggestions
	// returned right after a task is created.
	SuggestionLimit    = 5
	SuggestionMinScore = 40.0
)

// CandidateMatch pairs an engine result with the employee it refers to.
type CandidateMatch struct {
	Employee employee.Employee
	Result   matching.MatchResult
}

type MatchingUsecase interface {
	TopMatches(ctx context.Context, taskID uuid.UUID, limit int, minScore float64) ([]matching.MatchResult, error)
	MatchesForTask(ctx context.Context, taskID uuid.UUID, limit int, minScore float64) ([]CandidateMatch, error)
	AssignTask(ctx context.Context, taskID uuid.UUID, employeeID uuid.UUID) (task.Assignment, error)
}

type Matching struct {
	tasks       repository.TaskRepository
	employees   repository.EmployeeRepository
	records     repository.SkillRecordRepository
	assignments repository.AssignmentRepository
	params      matching.Params
	notifier    Notifier
}

func NewMatchingUsecase(
	tasks repository.TaskRepository,
	employees repository.EmployeeRepository,
	records repository.SkillRecordRepository,
	assignments repository.AssignmentRepository,
	params matching.Params,
	notifier Notifier,
) *Matching {
	return &Matching{
		tasks:       tasks,
		employees:   employees,
		records:     records,
		assignments: assignments,
		params:      params,
		notifier:    notifier,
	}
}

func (u *Matching) TopMatches(ctx context.Context, taskID uuid.UUID, limit int, minScore float64) ([]matching.MatchResult, error) {
	matches, err := u.MatchesForTask(ctx, taskID, limit, minScore)
	if err != nil {
		return nil, err
	}
	out := make([]matching.MatchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Result)
	}
	return out, nil
}

func (u *Matching) MatchesForTask(ctx context.Context, taskID uuid.UUID, limit int, minScore float64) ([]CandidateMatch, error) {
	if taskID == uuid.Nil {
		return nil, ErrTaskNotFound
	}
	t, err := u.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, ErrInternal
	}

	candidates, byID, err := u.candidates(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	results := matching.Rank(matching.Task{
		RequiredSkills: t.RequiredSkills,
		Priority:       t.Priority,
	}, candidates, limit, minScore, u.params)

	out := make([]CandidateMatch, 0, len(results))
	for _, res := range results {
		out = append(out, CandidateMatch{Employee: byID[res.EmployeeID], Result: res})
	}
	return out, nil
}

func (u *Matching) AssignTask(ctx context.Context, taskID uuid.UUID, employeeID uuid.UUID) (task.Assignment, error) {
	if taskID == uuid.Nil || employeeID == uuid.Nil {
		return task.Assignment{}, ErrInvalidInput
	}

	t, err := u.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return task.Assignment{}, ErrTaskNotFound
		}
		return task.Assignment{}, ErrInternal
	}
	if t.Status != task.StatusUnassigned && t.Status != task.StatusAssigned {
		return task.Assignment{}, ErrTaskNotOpen
	}

	e, err := u.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return task.Assignment{}, ErrEmployeeNotFound
		}
		return task.Assignment{}, ErrInternal
	}

	active, err := u.assignments.ActiveCountByEmployee(ctx, employeeID)
	if err != nil {
		return task.Assignment{}, ErrInternal
	}
	if active >= employee.Capacity {
		return task.Assignment{}, ErrEmployeeOverloaded
	}

	recs, err := u.records.ListByEmployee(ctx, employeeID)
	if err != nil {
		return task.Assignment{}, ErrInternal
	}
	profile := matching.BuildProfile(toMatchingRecords(recs))
	score := matching.Score(profile, matching.Task{
		RequiredSkills: t.RequiredSkills,
		Priority:       t.Priority,
	}, employee.WorkloadPercent(active), u.params)

	assigned, err := u.assignments.Assign(ctx, task.Assignment{
		ID:               uuid.New(),
		TaskID:           taskID,
		EmployeeID:       employeeID,
		SuitabilityScore: score,
	})
	if err != nil {
		return task.Assignment{}, ErrInternal
	}

	if u.notifier != nil {
		t.Status = task.StatusAssigned
		u.notifier.TaskAssigned(ctx, t, e, score)
	}

	return assigned, nil
}

// candidates loads every employee with their skill profile and current
// workload. Matching always works from live records, never a stale
// snapshot.
func (u *Matching) candidates(ctx context.Context) ([]matching.Candidate, map[uuid.UUID]employee.Employee, error) {
	employees, err := u.employees.List(ctx, nil)
	if err != nil {
		return nil, nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(employees))
	byID := make(map[uuid.UUID]employee.Employee, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	recs, err := u.records.ListByEmployees(ctx, ids)
	if err != nil {
		return nil, nil, ErrInternal
	}
	counts, err := u.assignments.ActiveCounts(ctx, ids)
	if err != nil {
		return nil, nil, ErrInternal
	}

	candidates := make([]matching.Candidate, 0, len(employees))
	for _, e := range employees {
		candidates = append(candidates, matching.Candidate{
			EmployeeID:  e.ID,
			Profile:     matching.BuildProfile(toMatchingRecords(recs[e.ID])),
			WorkloadPct: employee.WorkloadPercent(counts[e.ID]),
		})
	}
	return candidates, byID, nil
}

func toMatchingRecords(recs []employee.SkillRecord) []matching.Record {
	out := make([]matching.Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, matching.Record{
			Name:       rec.Name,
			Confidence: rec.Confidence,
			Manual:     rec.Source == employee.SourceManual,
		})
	}
	return out
}
