package usecase

import (
	"context"
	"log"
	"time"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

const statsCacheTTL = 30 * time.Second

// ManagerStats is the PM dashboard payload.
type ManagerStats struct {
	TotalEmployees  int                 `json:"total_employees"`
	TotalTasks      int                 `json:"total_tasks"`
	TasksByStatus   map[task.Status]int `json:"tasks_by_status"`
	UnassignedTasks int                 `json:"unassigned_tasks"`
	AvgWorkloadPct  float64             `json:"avg_workload_pct"`
	OverloadedCount int                 `json:"overloaded_count"`
}

// EmployeeStats is the personal dashboard payload.
type EmployeeStats struct {
	ActiveTasks    int     `json:"active_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	WorkloadPct    float64 `json:"workload_pct"`
	SkillCount     int     `json:"skill_count"`
}

type DashboardUsecase interface {
	ManagerStats(ctx context.Context) (ManagerStats, error)
	EmployeeStats(ctx context.Context, employeeID uuid.UUID) (EmployeeStats, error)
	InvalidateStats(ctx context.Context)
}

type Dashboard struct {
	employees   repository.EmployeeRepository
	tasks       repository.TaskRepository
	assignments repository.AssignmentRepository
	records     repository.SkillRecordRepository
	cache       Cache
	logger      *log.Logger
}

func NewDashboardUsecase(
	employees repository.EmployeeRepository,
	tasks repository.TaskRepository,
	assignments repository.AssignmentRepository,
	records repository.SkillRecordRepository,
	cache Cache,
	logger *log.Logger,
) *Dashboard {
	return &Dashboard{
		employees:   employees,
		tasks:       tasks,
		assignments: assignments,
		records:     records,
		cache:       cache,
		logger:      logger,
	}
}

func (u *Dashboard) ManagerStats(ctx context.Context) (ManagerStats, error) {
	const key = "dashboard:manager"

	if u.cache != nil {
		var cached ManagerStats
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Dashboard] Cache HIT: %s", key)
			}
			return cached, nil
		}
	}

	employees, err := u.employees.List(ctx, nil)
	if err != nil {
		return ManagerStats{}, ErrInternal
	}
	byStatus, err := u.tasks.CountByStatus(ctx)
	if err != nil {
		return ManagerStats{}, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	counts, err := u.assignments.ActiveCounts(ctx, ids)
	if err != nil {
		return ManagerStats{}, ErrInternal
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	var workloadSum float64
	overloaded := 0
	for _, id := range ids {
		pct := employee.WorkloadPercent(counts[id])
		workloadSum += pct
		if pct >= 90 {
			overloaded++
		}
	}
	avg := 0.0
	if len(ids) > 0 {
		avg = workloadSum / float64(len(ids))
	}

	stats := ManagerStats{
		TotalEmployees:  len(employees),
		TotalTasks:      total,
		TasksByStatus:   byStatus,
		UnassignedTasks: byStatus[task.StatusUnassigned],
		AvgWorkloadPct:  avg,
		OverloadedCount: overloaded,
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, stats, statsCacheTTL); err == nil && u.logger != nil {
			u.logger.Printf("[Dashboard] Cache SET: %s", key)
		}
	}
	return stats, nil
}

func (u *Dashboard) EmployeeStats(ctx context.Context, employeeID uuid.UUID) (EmployeeStats, error) {
	if employeeID == uuid.Nil {
		return EmployeeStats{}, ErrInvalidInput
	}

	assignments, err := u.assignments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeStats{}, ErrInternal
	}

	active, completed := 0, 0
	for _, a := range assignments {
		switch a.Status {
		case task.StatusAssigned, task.StatusInProgress, task.StatusBlocked:
			active++
		case task.StatusCompleted:
			completed++
		}
	}

	recs, err := u.records.ListByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeStats{}, ErrInternal
	}

	return EmployeeStats{
		ActiveTasks:    active,
		CompletedTasks: completed,
		WorkloadPct:    employee.WorkloadPercent(active),
		SkillCount:     len(recs),
	}, nil
}

// InvalidateStats drops cached dashboard aggregates after writes that
// change them.
func (u *Dashboard) InvalidateStats(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "dashboard:*")
}
