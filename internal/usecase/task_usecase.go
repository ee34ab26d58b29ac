package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskmatch/internal/domain/extract"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/skill"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusTransitions lists the states each task status may move to.
// CANCELLED is reachable from every non-terminal state.
var statusTransitions = map[task.Status][]task.Status{
	task.StatusDraft:      {task.StatusUnassigned, task.StatusCancelled},
	task.StatusUnassigned: {task.StatusAssigned, task.StatusCancelled},
	task.StatusAssigned:   {task.StatusInProgress, task.StatusUnassigned, task.StatusCancelled},
	task.StatusInProgress: {task.StatusBlocked, task.StatusCompleted, task.StatusCancelled},
	task.StatusBlocked:    {task.StatusInProgress, task.StatusCancelled},
}

type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       string
	RequiredSkills []string
	ProjectID      *uuid.UUID
	StartDate      *time.Time
	DueDate        *time.Time
	Draft          bool
}

type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *string
	RequiredSkills []string
	ProjectID      *uuid.UUID
	StartDate      *time.Time
	DueDate        *time.Time
}

// TaskDetail is a task with its current assignment, when one exists.
type TaskDetail struct {
	Task       task.Task
	Assignment *task.Assignment
}

type TaskUsecase interface {
	CreateTask(ctx context.Context, createdBy uuid.UUID, in CreateTaskInput) (TaskDetail, []matching.MatchResult, error)
	GetTask(ctx context.Context, id uuid.UUID) (TaskDetail, error)
	ListTasks(ctx context.Context, filter repository.TaskFilter) ([]TaskDetail, error)
	ListTasksByAssignee(ctx context.Context, employeeID uuid.UUID) ([]TaskDetail, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (TaskDetail, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status) (TaskDetail, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	AnalyzeText(ctx context.Context, text string) []extract.Extracted
}

type Tasks struct {
	tasks       repository.TaskRepository
	projects    repository.ProjectRepository
	assignments repository.AssignmentRepository
	matcher     MatchingUsecase
	notifier    Notifier
}

func NewTaskUsecase(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	assignments repository.AssignmentRepository,
	matcher MatchingUsecase,
	notifier Notifier,
) *Tasks {
	return &Tasks{tasks: tasks, projects: projects, assignments: assignments, matcher: matcher, notifier: notifier}
}

func (u *Tasks) CreateTask(ctx context.Context, createdBy uuid.UUID, in CreateTaskInput) (TaskDetail, []matching.MatchResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || createdBy == uuid.Nil {
		return TaskDetail{}, nil, ErrInvalidInput
	}

	priority, err := parsePriority(in.Priority)
	if err != nil {
		return TaskDetail{}, nil, err
	}

	if in.ProjectID != nil {
		if _, err := u.projects.GetByID(ctx, *in.ProjectID); err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				return TaskDetail{}, nil, ErrProjectNotFound
			}
			return TaskDetail{}, nil, ErrInternal
		}
	}

	skills := normalizeRequiredSkills(in.RequiredSkills)
	if len(skills) == 0 && strings.TrimSpace(in.Description) != "" {
		for _, ex := range extract.Extract(in.Description, extract.DefaultMinConfidence) {
			skills = append(skills, ex.Name)
		}
	}

	status := task.StatusUnassigned
	if in.Draft {
		status = task.StatusDraft
	}

	created, err := u.tasks.Create(ctx, task.Task{
		ID:             uuid.New(),
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Priority:       priority,
		Status:         status,
		CreatedBy:      createdBy,
		ProjectID:      in.ProjectID,
		StartDate:      in.StartDate,
		DueDate:        in.DueDate,
		RequiredSkills: skills,
	})
	if err != nil {
		return TaskDetail{}, nil, ErrInternal
	}

	var suggestions []matching.MatchResult
	if status == task.StatusUnassigned && u.matcher != nil {
		suggestions, err = u.matcher.TopMatches(ctx, created.ID, SuggestionLimit, SuggestionMinScore)
		if err != nil {
			suggestions = nil
		}
	}

	return TaskDetail{Task: created}, suggestions, nil
}

func (u *Tasks) GetTask(ctx context.Context, id uuid.UUID) (TaskDetail, error) {
	if id == uuid.Nil {
		return TaskDetail{}, ErrTaskNotFound
	}
	t, err := u.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskDetail{}, ErrTaskNotFound
		}
		return TaskDetail{}, ErrInternal
	}
	return u.withAssignment(ctx, t)
}

func (u *Tasks) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]TaskDetail, error) {
	list, err := u.tasks.List(ctx, filter)
	if err != nil {
		return nil, ErrInternal
	}
	return u.withAssignments(ctx, list)
}

func (u *Tasks) ListTasksByAssignee(ctx context.Context, employeeID uuid.UUID) ([]TaskDetail, error) {
	if employeeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	list, err := u.tasks.ListByAssignee(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}
	return u.withAssignments(ctx, list)
}

func (u *Tasks) UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (TaskDetail, error) {
	t, err := u.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskDetail{}, ErrTaskNotFound
		}
		return TaskDetail{}, ErrInternal
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return TaskDetail{}, ErrInvalidInput
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Priority != nil {
		priority, err := parsePriority(*in.Priority)
		if err != nil {
			return TaskDetail{}, err
		}
		t.Priority = priority
	}
	if in.RequiredSkills != nil {
		t.RequiredSkills = normalizeRequiredSkills(in.RequiredSkills)
	}
	if in.ProjectID != nil {
		if _, err := u.projects.GetByID(ctx, *in.ProjectID); err != nil {
			if errors.Is(err, repository.ErrProjectNotFound) {
				return TaskDetail{}, ErrProjectNotFound
			}
			return TaskDetail{}, ErrInternal
		}
		t.ProjectID = in.ProjectID
	}
	if in.StartDate != nil {
		t.StartDate = in.StartDate
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}

	updated, err := u.tasks.Update(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskDetail{}, ErrTaskNotFound
		}
		return TaskDetail{}, ErrInternal
	}
	return u.withAssignment(ctx, updated)
}

func (u *Tasks) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status) (TaskDetail, error) {
	if !status.Valid() {
		return TaskDetail{}, ErrInvalidStatus
	}

	t, err := u.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return TaskDetail{}, ErrTaskNotFound
		}
		return TaskDetail{}, ErrInternal
	}

	if !transitionAllowed(t.Status, status) {
		return TaskDetail{}, ErrInvalidTransition
	}

	if err := u.tasks.UpdateStatus(ctx, id, status); err != nil {
		return TaskDetail{}, ErrInternal
	}
	t.Status = status

	// Keep the active assignment in step with the task.
	active, err := u.assignments.GetActiveByTask(ctx, id)
	if err == nil {
		switch status {
		case task.StatusInProgress, task.StatusBlocked, task.StatusCompleted, task.StatusCancelled:
			_ = u.assignments.UpdateStatus(ctx, active.ID, status)
		case task.StatusUnassigned:
			_ = u.assignments.UpdateStatus(ctx, active.ID, task.StatusCancelled)
		}
	}

	if u.notifier != nil {
		u.notifier.TaskStatusChanged(ctx, t, status)
	}

	return u.withAssignment(ctx, t)
}

func (u *Tasks) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := u.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Tasks) AnalyzeText(ctx context.Context, text string) []extract.Extracted {
	return extract.Extract(text, extract.DefaultMinConfidence)
}

func (u *Tasks) withAssignment(ctx context.Context, t task.Task) (TaskDetail, error) {
	detail := TaskDetail{Task: t}
	active, err := u.assignments.GetActiveByTask(ctx, t.ID)
	if err == nil {
		detail.Assignment = &active
	} else if !errors.Is(err, repository.ErrAssignmentNotFound) {
		return TaskDetail{}, ErrInternal
	}
	return detail, nil
}

func (u *Tasks) withAssignments(ctx context.Context, list []task.Task) ([]TaskDetail, error) {
	out := make([]TaskDetail, 0, len(list))
	for _, t := range list {
		detail, err := u.withAssignment(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

func transitionAllowed(from, to task.Status) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func parsePriority(raw string) (matching.Priority, error) {
	p := matching.Priority(strings.ToUpper(strings.TrimSpace(raw)))
	switch p {
	case "":
		return matching.PriorityMedium, nil
	case matching.PriorityHigh, matching.PriorityMedium, matching.PriorityLow:
		return p, nil
	}
	return "", ErrInvalidPriority
}

func normalizeRequiredSkills(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		key := skill.NormalizeKey(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill.DisplayName(s))
	}
	return out
}
