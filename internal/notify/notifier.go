package notify

import (
	"context"
	"errors"
	"log"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/domain/user"
	"taskmatch/internal/repository"
	"taskmatch/internal/ws"
)

// Notifier pushes assignment and status events to websocket clients and
// mails the people involved. Every path is best effort; the caller's
// request never fails because a notification did.
type Notifier struct {
	hub         *ws.Hub
	mailer      *EmailSender
	users       user.Repository
	employees   repository.EmployeeRepository
	assignments repository.AssignmentRepository
	logger      *log.Logger
}

func NewNotifier(
	hub *ws.Hub,
	mailer *EmailSender,
	users user.Repository,
	employees repository.EmployeeRepository,
	assignments repository.AssignmentRepository,
	logger *log.Logger,
) *Notifier {
	return &Notifier{
		hub:         hub,
		mailer:      mailer,
		users:       users,
		employees:   employees,
		assignments: assignments,
		logger:      logger,
	}
}

func (n *Notifier) TaskAssigned(ctx context.Context, t task.Task, e employee.Employee, score float64) {
	if n == nil {
		return
	}

	n.hub.NotifyAssignmentCreated(t.ID.String(), t.Title, e.ID.String(), e.Name, score)

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	n.mailer.SendAsync(e.Email, "New task assigned: "+t.Title, assignmentEmailBody(t.Title, score, due))
}

func (n *Notifier) TaskStatusChanged(ctx context.Context, t task.Task, status task.Status) {
	if n == nil {
		return
	}

	n.hub.NotifyTaskStatusChanged(t.ID.String(), t.Title, string(status))

	if status == task.StatusCompleted {
		n.notifyCompletion(ctx, t)
	}
}

// notifyCompletion mails the task creator when work finishes.
func (n *Notifier) notifyCompletion(ctx context.Context, t task.Task) {
	if n.users == nil || n.mailer == nil || !n.mailer.Enabled() {
		return
	}

	creator, err := n.users.GetByID(ctx, t.CreatedBy)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) && n.logger != nil {
			n.logger.Printf("notify=completion status=error task_id=%s err=%v", t.ID, err)
		}
		return
	}

	// The assignment is already COMPLETED at this point, so look at the
	// task's most recent assignment rather than the active one.
	assigneeName := "The assignee"
	if n.assignments != nil && n.employees != nil {
		if list, err := n.assignments.ListByTask(ctx, t.ID); err == nil && len(list) > 0 {
			if e, err := n.employees.GetByID(ctx, list[0].EmployeeID); err == nil && e.Name != "" {
				assigneeName = e.Name
			}
		}
	}

	n.mailer.SendAsync(creator.Email, "Task completed: "+t.Title, completionEmailBody(t.Title, assigneeName))
}
