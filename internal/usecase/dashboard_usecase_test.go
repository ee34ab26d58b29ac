package usecase

import (
	"context"
	"testing"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"

	"github.com/google/uuid"
)

func TestManagerStats_Aggregates(t *testing.T) {
	tasks := newMemTaskRepo()
	employees := newMemEmployeeRepo()
	records := newMemRecordRepo()
	assignments := newMemAssignmentRepo()
	uc := NewDashboardUsecase(employees, tasks, assignments, records, nil, nil)

	busy := employee.Employee{ID: uuid.New(), Name: "busy", Email: "busy@example.com"}
	idle := employee.Employee{ID: uuid.New(), Name: "idle", Email: "idle@example.com"}
	employees.employees[busy.ID] = busy
	employees.employees[idle.ID] = idle

	for i := 0; i < employee.Capacity; i++ {
		id := uuid.New()
		assignments.assignments[id] = task.Assignment{
			ID: id, TaskID: uuid.New(), EmployeeID: busy.ID, Status: task.StatusInProgress,
		}
	}

	for _, status := range []task.Status{task.StatusUnassigned, task.StatusUnassigned, task.StatusCompleted} {
		id := uuid.New()
		tasks.tasks[id] = task.Task{ID: id, Title: id.String(), Status: status}
	}

	stats, err := uc.ManagerStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.TotalEmployees != 2 {
		t.Errorf("total employees = %d, want 2", stats.TotalEmployees)
	}
	if stats.TotalTasks != 3 {
		t.Errorf("total tasks = %d, want 3", stats.TotalTasks)
	}
	if stats.UnassignedTasks != 2 {
		t.Errorf("unassigned = %d, want 2", stats.UnassignedTasks)
	}
	if stats.OverloadedCount != 1 {
		t.Errorf("overloaded = %d, want 1", stats.OverloadedCount)
	}
	// One fully booked employee and one idle one.
	if stats.AvgWorkloadPct != 50 {
		t.Errorf("avg workload = %v, want 50", stats.AvgWorkloadPct)
	}
}

func TestEmployeeStats_CountsByAssignmentState(t *testing.T) {
	tasks := newMemTaskRepo()
	employees := newMemEmployeeRepo()
	records := newMemRecordRepo()
	assignments := newMemAssignmentRepo()
	uc := NewDashboardUsecase(employees, tasks, assignments, records, nil, nil)

	e := seedEmployee(employees)
	records.records[e.ID] = []employee.SkillRecord{
		{ID: uuid.New(), EmployeeID: e.ID, Name: "Go"},
		{ID: uuid.New(), EmployeeID: e.ID, Name: "SQL"},
	}
	for _, status := range []task.Status{task.StatusAssigned, task.StatusCompleted, task.StatusCompleted, task.StatusCancelled} {
		id := uuid.New()
		assignments.assignments[id] = task.Assignment{
			ID: id, TaskID: uuid.New(), EmployeeID: e.ID, Status: status,
		}
	}

	stats, err := uc.EmployeeStats(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.ActiveTasks != 1 {
		t.Errorf("active = %d, want 1", stats.ActiveTasks)
	}
	if stats.CompletedTasks != 2 {
		t.Errorf("completed = %d, want 2", stats.CompletedTasks)
	}
	if stats.WorkloadPct != 20 {
		t.Errorf("workload = %v, want 20", stats.WorkloadPct)
	}
	if stats.SkillCount != 2 {
		t.Errorf("skills = %d, want 2", stats.SkillCount)
	}
}
