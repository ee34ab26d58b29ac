package usecase

import (
	"context"
	"sort"
	"time"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/task"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

type memTaskRepo struct {
	tasks map[uuid.UUID]task.Task
	err   error
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[uuid.UUID]task.Task{}}
}

func (m *memTaskRepo) Create(_ context.Context, t task.Task) (task.Task, error) {
	if m.err != nil {
		return task.Task{}, m.err
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) GetByID(_ context.Context, id uuid.UUID) (task.Task, error) {
	if m.err != nil {
		return task.Task{}, m.err
	}
	t, ok := m.tasks[id]
	if !ok {
		return task.Task{}, repository.ErrTaskNotFound
	}
	return t, nil
}

func (m *memTaskRepo) List(context.Context, repository.TaskFilter) ([]task.Task, error) {
	out := make([]task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memTaskRepo) ListByAssignee(context.Context, uuid.UUID) ([]task.Task, error) {
	return nil, nil
}

func (m *memTaskRepo) Update(_ context.Context, t task.Task) (task.Task, error) {
	if _, ok := m.tasks[t.ID]; !ok {
		return task.Task{}, repository.ErrTaskNotFound
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) UpdateStatus(_ context.Context, id uuid.UUID, status task.Status) error {
	t, ok := m.tasks[id]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.Status = status
	m.tasks[id] = t
	return nil
}

func (m *memTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memTaskRepo) CountByStatus(context.Context) (map[task.Status]int, error) {
	out := map[task.Status]int{}
	for _, t := range m.tasks {
		out[t.Status]++
	}
	return out, nil
}

type memEmployeeRepo struct {
	employees map[uuid.UUID]employee.Employee
}

func newMemEmployeeRepo(list ...employee.Employee) *memEmployeeRepo {
	m := &memEmployeeRepo{employees: map[uuid.UUID]employee.Employee{}}
	for _, e := range list {
		m.employees[e.ID] = e
	}
	return m
}

func (m *memEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployeeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, repository.ErrEmployeeNotFound
}

func (m *memEmployeeRepo) List(context.Context, *uuid.UUID) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := m.employees[e.ID]; !ok {
		return employee.Employee{}, repository.ErrEmployeeNotFound
	}
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.employees[id]; !ok {
		return repository.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

type memRecordRepo struct {
	records map[uuid.UUID][]employee.SkillRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: map[uuid.UUID][]employee.SkillRecord{}}
}

func (m *memRecordRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error) {
	return m.records[employeeID], nil
}

func (m *memRecordRepo) ListByEmployees(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]employee.SkillRecord, error) {
	out := map[uuid.UUID][]employee.SkillRecord{}
	for _, id := range ids {
		if recs, ok := m.records[id]; ok {
			out[id] = recs
		}
	}
	return out, nil
}

func (m *memRecordRepo) Create(_ context.Context, rec employee.SkillRecord) (employee.SkillRecord, error) {
	rec.CreatedAt = time.Now()
	m.records[rec.EmployeeID] = append(m.records[rec.EmployeeID], rec)
	return rec, nil
}

func (m *memRecordRepo) Delete(_ context.Context, id uuid.UUID, employeeID uuid.UUID) error {
	for ownerID, recs := range m.records {
		for i, rec := range recs {
			if rec.ID != id {
				continue
			}
			if ownerID != employeeID {
				return repository.ErrSkillRecordForbidden
			}
			m.records[ownerID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return repository.ErrSkillRecordNotFound
}

func (m *memRecordRepo) ReplaceBySource(_ context.Context, employeeID uuid.UUID, source employee.SkillSource, recs []employee.SkillRecord) error {
	kept := m.records[employeeID][:0:0]
	for _, rec := range m.records[employeeID] {
		if rec.Source != source {
			kept = append(kept, rec)
		}
	}
	m.records[employeeID] = append(kept, recs...)
	return nil
}

type memAssignmentRepo struct {
	assignments map[uuid.UUID]task.Assignment
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: map[uuid.UUID]task.Assignment{}}
}

func isActiveAssignment(s task.Status) bool {
	return s == task.StatusAssigned || s == task.StatusInProgress || s == task.StatusBlocked
}

func (m *memAssignmentRepo) Assign(_ context.Context, a task.Assignment) (task.Assignment, error) {
	for id, existing := range m.assignments {
		if existing.TaskID == a.TaskID && isActiveAssignment(existing.Status) {
			existing.Status = task.StatusCancelled
			m.assignments[id] = existing
		}
	}
	a.Status = task.StatusAssigned
	a.AssignedAt = time.Now()
	m.assignments[a.ID] = a
	return a, nil
}

func (m *memAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (task.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return task.Assignment{}, repository.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *memAssignmentRepo) GetActiveByTask(_ context.Context, taskID uuid.UUID) (task.Assignment, error) {
	for _, a := range m.assignments {
		if a.TaskID == taskID && isActiveAssignment(a.Status) {
			return a, nil
		}
	}
	return task.Assignment{}, repository.ErrAssignmentNotFound
}

func (m *memAssignmentRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]task.Assignment, error) {
	var out []task.Assignment
	for _, a := range m.assignments {
		if a.TaskID == taskID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]task.Assignment, error) {
	var out []task.Assignment
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status task.Status) error {
	a, ok := m.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	a.Status = status
	m.assignments[id] = a
	return nil
}

func (m *memAssignmentRepo) ActiveCounts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := map[uuid.UUID]int{}
	for _, id := range ids {
		n, err := m.ActiveCountByEmployee(context.Background(), id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) ActiveCountByEmployee(_ context.Context, employeeID uuid.UUID) (int, error) {
	n := 0
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && isActiveAssignment(a.Status) {
			n++
		}
	}
	return n, nil
}

type memCVRepo struct {
	docs map[uuid.UUID]employee.CVDocument
}

func newMemCVRepo() *memCVRepo {
	return &memCVRepo{docs: map[uuid.UUID]employee.CVDocument{}}
}

func (m *memCVRepo) Create(_ context.Context, doc employee.CVDocument) (employee.CVDocument, error) {
	doc.UploadedAt = time.Now()
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *memCVRepo) GetByID(_ context.Context, id uuid.UUID) (employee.CVDocument, error) {
	doc, ok := m.docs[id]
	if !ok {
		return employee.CVDocument{}, repository.ErrCVNotFound
	}
	return doc, nil
}

func (m *memCVRepo) GetLatestByEmployee(_ context.Context, employeeID uuid.UUID) (employee.CVDocument, error) {
	var latest employee.CVDocument
	found := false
	for _, doc := range m.docs {
		if doc.EmployeeID != employeeID {
			continue
		}
		if !found || doc.UploadedAt.After(latest.UploadedAt) {
			latest = doc
			found = true
		}
	}
	if !found {
		return employee.CVDocument{}, repository.ErrCVNotFound
	}
	return latest, nil
}

func (m *memCVRepo) ListByStatus(_ context.Context, status employee.CVStatus, limit int) ([]employee.CVDocument, error) {
	var out []employee.CVDocument
	for _, doc := range m.docs {
		if doc.Status == status {
			out = append(out, doc)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memCVRepo) SetStatus(_ context.Context, id uuid.UUID, status employee.CVStatus, errorMessage string) error {
	doc, ok := m.docs[id]
	if !ok {
		return repository.ErrCVNotFound
	}
	doc.Status = status
	doc.ErrorMessage = errorMessage
	m.docs[id] = doc
	return nil
}

type memProjectRepo struct {
	projects map[uuid.UUID]task.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: map[uuid.UUID]task.Project{}}
}

func (m *memProjectRepo) Create(_ context.Context, p task.Project) (task.Project, error) {
	m.projects[p.ID] = p
	return p, nil
}

func (m *memProjectRepo) GetByID(_ context.Context, id uuid.UUID) (task.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return task.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (m *memProjectRepo) List(context.Context) ([]task.Project, error) {
	out := make([]task.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

type mockQueue struct {
	accept   bool
	enqueued []uuid.UUID
}

func (q *mockQueue) Enqueue(docID uuid.UUID) bool {
	if !q.accept {
		return false
	}
	q.enqueued = append(q.enqueued, docID)
	return true
}

type recordingNotifier struct {
	assigned      int
	statusChanges []task.Status
}

func (n *recordingNotifier) TaskAssigned(context.Context, task.Task, employee.Employee, float64) {
	n.assigned++
}

func (n *recordingNotifier) TaskStatusChanged(_ context.Context, _ task.Task, status task.Status) {
	n.statusChanges = append(n.statusChanges, status)
}
