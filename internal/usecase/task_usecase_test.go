package usecase

import (
	"context"
	"errors"
	"testing"

	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

func newTaskFixture() (*Tasks, *memTaskRepo, *memProjectRepo, *memAssignmentRepo, *recordingNotifier) {
	tasks := newMemTaskRepo()
	projects := newMemProjectRepo()
	assignments := newMemAssignmentRepo()
	notifier := &recordingNotifier{}
	uc := NewTaskUsecase(tasks, projects, assignments, nil, notifier)
	return uc, tasks, projects, assignments, notifier
}

func TestCreateTask_ExtractsSkillsFromDescription(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	detail, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{
		Title:       "Build reporting service",
		Description: "Skills: Python, PostgreSQL, Docker",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(detail.Task.RequiredSkills) == 0 {
		t.Fatalf("expected skills extracted from description, got none")
	}
	found := map[string]bool{}
	for _, s := range detail.Task.RequiredSkills {
		found[s] = true
	}
	for _, want := range []string{"Python", "PostgreSQL", "Docker"} {
		if !found[want] {
			t.Errorf("missing extracted skill %q in %v", want, detail.Task.RequiredSkills)
		}
	}
}

func TestCreateTask_ExplicitSkillsWinOverExtraction(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	detail, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{
		Title:          "Build reporting service",
		Description:    "Skills: Python, PostgreSQL, Docker",
		RequiredSkills: []string{"go", "golang", "Kubernetes"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// "go" and "golang" collapse to one canonical skill.
	if len(detail.Task.RequiredSkills) != 2 {
		t.Fatalf("skills = %v, want deduplicated [Go Kubernetes]", detail.Task.RequiredSkills)
	}
	if detail.Task.RequiredSkills[0] != "Go" || detail.Task.RequiredSkills[1] != "Kubernetes" {
		t.Errorf("skills = %v, want [Go Kubernetes]", detail.Task.RequiredSkills)
	}
}

func TestCreateTask_InvalidPriority(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	_, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{
		Title:    "Something",
		Priority: "URGENT",
	})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestCreateTask_DefaultPriorityAndStatus(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	detail, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{Title: "Something"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Task.Priority != matching.PriorityMedium {
		t.Errorf("priority = %q, want MEDIUM", detail.Task.Priority)
	}
	if detail.Task.Status != task.StatusUnassigned {
		t.Errorf("status = %q, want UNASSIGNED", detail.Task.Status)
	}

	draft, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{Title: "Later", Draft: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if draft.Task.Status != task.StatusDraft {
		t.Errorf("status = %q, want DRAFT", draft.Task.Status)
	}
}

func TestCreateTask_UnknownProject(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	missing := uuid.New()
	_, _, err := uc.CreateTask(context.Background(), uuid.New(), CreateTaskInput{
		Title:     "Something",
		ProjectID: &missing,
	})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateTaskStatus_RejectsIllegalTransition(t *testing.T) {
	uc, tasks, _, _, _ := newTaskFixture()

	tk := task.Task{ID: uuid.New(), Title: "Something", Status: task.StatusUnassigned}
	tasks.tasks[tk.ID] = tk

	_, err := uc.UpdateTaskStatus(context.Background(), tk.ID, task.StatusCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	_, err = uc.UpdateTaskStatus(context.Background(), tk.ID, "NONSENSE")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateTaskStatus_SyncsAssignment(t *testing.T) {
	uc, tasks, _, assignments, notifier := newTaskFixture()

	tk := task.Task{ID: uuid.New(), Title: "Something", Status: task.StatusAssigned}
	tasks.tasks[tk.ID] = tk
	a := task.Assignment{ID: uuid.New(), TaskID: tk.ID, EmployeeID: uuid.New(), Status: task.StatusAssigned}
	assignments.assignments[a.ID] = a

	detail, err := uc.UpdateTaskStatus(context.Background(), tk.ID, task.StatusInProgress)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Task.Status != task.StatusInProgress {
		t.Errorf("task status = %q, want IN_PROGRESS", detail.Task.Status)
	}
	got, _ := assignments.GetByID(context.Background(), a.ID)
	if got.Status != task.StatusInProgress {
		t.Errorf("assignment status = %q, want IN_PROGRESS", got.Status)
	}
	if len(notifier.statusChanges) != 1 || notifier.statusChanges[0] != task.StatusInProgress {
		t.Errorf("notifier status changes = %v", notifier.statusChanges)
	}
}

func TestUpdateTaskStatus_UnassignCancelsAssignment(t *testing.T) {
	uc, tasks, _, assignments, _ := newTaskFixture()

	tk := task.Task{ID: uuid.New(), Title: "Something", Status: task.StatusAssigned}
	tasks.tasks[tk.ID] = tk
	a := task.Assignment{ID: uuid.New(), TaskID: tk.ID, EmployeeID: uuid.New(), Status: task.StatusAssigned}
	assignments.assignments[a.ID] = a

	if _, err := uc.UpdateTaskStatus(context.Background(), tk.ID, task.StatusUnassigned); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := assignments.GetByID(context.Background(), a.ID)
	if got.Status != task.StatusCancelled {
		t.Errorf("assignment status = %q, want CANCELLED", got.Status)
	}
}

func TestUpdateTask_PartialFields(t *testing.T) {
	uc, tasks, _, _, _ := newTaskFixture()

	tk := task.Task{
		ID:             uuid.New(),
		Title:          "Old title",
		Description:    "old",
		Priority:       matching.PriorityLow,
		Status:         task.StatusUnassigned,
		RequiredSkills: []string{"Go"},
	}
	tasks.tasks[tk.ID] = tk

	newTitle := "New title"
	detail, err := uc.UpdateTask(context.Background(), tk.ID, UpdateTaskInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Task.Title != newTitle {
		t.Errorf("title = %q, want %q", detail.Task.Title, newTitle)
	}
	if detail.Task.Priority != matching.PriorityLow {
		t.Errorf("priority changed unexpectedly: %q", detail.Task.Priority)
	}
	if len(detail.Task.RequiredSkills) != 1 {
		t.Errorf("skills changed unexpectedly: %v", detail.Task.RequiredSkills)
	}
}

func TestDeleteTask_Unknown(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	if err := uc.DeleteTask(context.Background(), uuid.New()); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestAnalyzeText_ReturnsExtractedSkills(t *testing.T) {
	uc, _, _, _, _ := newTaskFixture()

	got := uc.AnalyzeText(context.Background(), "Experience with Python and Django required.")
	names := map[string]bool{}
	for _, ex := range got {
		names[ex.Name] = true
	}
	if !names["Python"] || !names["Django"] {
		t.Errorf("extracted = %v, want Python and Django", got)
	}
}
