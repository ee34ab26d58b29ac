package usecase

import (
	"context"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"
)

// Notifier fans assignment and status events out to whatever transports
// are wired in (websocket broadcast, email). Implementations must not
// block the caller.
type Notifier interface {
	TaskAssigned(ctx context.Context, t task.Task, e employee.Employee, score float64)
	TaskStatusChanged(ctx context.Context, t task.Task, status task.Status)
}

// NopNotifier is used where no transport is configured, mainly in tests.
type NopNotifier struct{}

func (NopNotifier) TaskAssigned(context.Context, task.Task, employee.Employee, float64) {}

func (NopNotifier) TaskStatusChanged(context.Context, task.Task, task.Status) {}
