package pipeline

import (
	"context"
	"log"
	"testing"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/skill"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

type stubCVRepo struct {
	docs     map[uuid.UUID]employee.CVDocument
	statuses []employee.CVStatus
}

func (s *stubCVRepo) Create(_ context.Context, doc employee.CVDocument) (employee.CVDocument, error) {
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *stubCVRepo) GetByID(_ context.Context, id uuid.UUID) (employee.CVDocument, error) {
	doc, ok := s.docs[id]
	if !ok {
		return employee.CVDocument{}, repository.ErrCVNotFound
	}
	return doc, nil
}

func (s *stubCVRepo) GetLatestByEmployee(context.Context, uuid.UUID) (employee.CVDocument, error) {
	return employee.CVDocument{}, repository.ErrCVNotFound
}

func (s *stubCVRepo) ListByStatus(_ context.Context, status employee.CVStatus, _ int) ([]employee.CVDocument, error) {
	var out []employee.CVDocument
	for _, doc := range s.docs {
		if doc.Status == status {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *stubCVRepo) SetStatus(_ context.Context, id uuid.UUID, status employee.CVStatus, errorMessage string) error {
	doc, ok := s.docs[id]
	if !ok {
		return repository.ErrCVNotFound
	}
	doc.Status = status
	doc.ErrorMessage = errorMessage
	s.docs[id] = doc
	s.statuses = append(s.statuses, status)
	return nil
}

type stubEmployeeRepo struct {
	employees map[uuid.UUID]employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	s.employees[e.ID] = e
	return e, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (employee.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *stubEmployeeRepo) GetByUserID(context.Context, uuid.UUID) (employee.Employee, error) {
	return employee.Employee{}, repository.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) List(context.Context, *uuid.UUID) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	s.employees[e.ID] = e
	return e, nil
}

func (s *stubEmployeeRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubRecordRepo struct {
	records map[uuid.UUID][]employee.SkillRecord
}

func (s *stubRecordRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]employee.SkillRecord, error) {
	return s.records[employeeID], nil
}

func (s *stubRecordRepo) ListByEmployees(context.Context, []uuid.UUID) (map[uuid.UUID][]employee.SkillRecord, error) {
	return s.records, nil
}

func (s *stubRecordRepo) Create(_ context.Context, rec employee.SkillRecord) (employee.SkillRecord, error) {
	s.records[rec.EmployeeID] = append(s.records[rec.EmployeeID], rec)
	return rec, nil
}

func (s *stubRecordRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (s *stubRecordRepo) ReplaceBySource(_ context.Context, employeeID uuid.UUID, source employee.SkillSource, recs []employee.SkillRecord) error {
	kept := s.records[employeeID][:0:0]
	for _, rec := range s.records[employeeID] {
		if rec.Source != source {
			kept = append(kept, rec)
		}
	}
	s.records[employeeID] = append(kept, recs...)
	return nil
}

type stubSkillRepo struct {
	upserted []string
}

func (s *stubSkillRepo) GetAllSkills(context.Context) ([]skill.CatalogEntry, error) {
	return nil, nil
}

func (s *stubSkillRepo) UpsertSkill(_ context.Context, name, _ string) (skill.CatalogEntry, error) {
	s.upserted = append(s.upserted, name)
	return skill.CatalogEntry{ID: uuid.New(), Name: name}, nil
}

type fixture struct {
	pipe      *CVProcessingPipeline
	cvs       *stubCVRepo
	employees *stubEmployeeRepo
	records   *stubRecordRepo
	skills    *stubSkillRepo
}

func newFixture() fixture {
	cvs := &stubCVRepo{docs: map[uuid.UUID]employee.CVDocument{}}
	employees := &stubEmployeeRepo{employees: map[uuid.UUID]employee.Employee{}}
	records := &stubRecordRepo{records: map[uuid.UUID][]employee.SkillRecord{}}
	skills := &stubSkillRepo{}
	pipe := NewCVProcessingPipeline(cvs, employees, records, skills, log.Default(), Config{Workers: 1, Buffer: 1})
	return fixture{pipe: pipe, cvs: cvs, employees: employees, records: records, skills: skills}
}

func (f fixture) addDoc(employeeID uuid.UUID, text string) employee.CVDocument {
	doc := employee.CVDocument{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		Filename:      "cv.pdf",
		ExtractedText: text,
		Status:        employee.CVProcessing,
	}
	f.cvs.docs[doc.ID] = doc
	return doc
}

func TestProcess_ExtractsAndStoresSkills(t *testing.T) {
	f := newFixture()
	e := employee.Employee{ID: uuid.New(), Name: "Alice", Title: "Engineer"}
	f.employees.employees[e.ID] = e
	doc := f.addDoc(e.ID, "Skills: Python, Django, PostgreSQL")

	if err := f.pipe.Process(context.Background(), doc.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := f.cvs.GetByID(context.Background(), doc.ID)
	if got.Status != employee.CVReady {
		t.Fatalf("status = %q, want READY", got.Status)
	}

	recs := f.records.records[e.ID]
	if len(recs) == 0 {
		t.Fatalf("no skill records stored")
	}
	names := map[string]bool{}
	for _, rec := range recs {
		if rec.Source != employee.SourceCV {
			t.Errorf("record source = %q, want CV", rec.Source)
		}
		names[rec.Name] = true
	}
	for _, want := range []string{"Python", "Django", "PostgreSQL"} {
		if !names[want] {
			t.Errorf("missing record %q in %v", want, names)
		}
	}
	if len(f.skills.upserted) == 0 {
		t.Errorf("expected catalog upserts for known skills")
	}
}

func TestProcess_ReuploadReplacesCVRecords(t *testing.T) {
	f := newFixture()
	e := employee.Employee{ID: uuid.New(), Name: "Alice", Title: "Engineer"}
	f.employees.employees[e.ID] = e

	manual := employee.SkillRecord{
		ID: uuid.New(), EmployeeID: e.ID, Name: "Leadership",
		Source: employee.SourceManual, Confidence: 1,
	}
	f.records.records[e.ID] = []employee.SkillRecord{manual}

	first := f.addDoc(e.ID, "Skills: Python")
	if err := f.pipe.Process(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second := f.addDoc(e.ID, "Skills: Rust")
	if err := f.pipe.Process(context.Background(), second.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var cvNames []string
	manualKept := false
	for _, rec := range f.records.records[e.ID] {
		switch rec.Source {
		case employee.SourceCV:
			cvNames = append(cvNames, rec.Name)
		case employee.SourceManual:
			manualKept = rec.Name == "Leadership"
		}
	}
	if !manualKept {
		t.Errorf("manual record dropped on re-upload")
	}
	for _, n := range cvNames {
		if n == "Python" {
			t.Errorf("stale CV record survived re-upload: %v", cvNames)
		}
	}
}

func TestProcess_BackfillsEmptyTitle(t *testing.T) {
	f := newFixture()
	e := employee.Employee{ID: uuid.New(), Name: "Alice"}
	f.employees.employees[e.ID] = e
	doc := f.addDoc(e.ID, "Years of Kubernetes, Docker and Terraform infrastructure work.")

	if err := f.pipe.Process(context.Background(), doc.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := f.employees.GetByID(context.Background(), e.ID)
	if got.Title == "" {
		t.Errorf("expected predicted title for empty profile")
	}
}

func TestProcess_UnknownDocument(t *testing.T) {
	f := newFixture()
	if err := f.pipe.Process(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error for unknown document")
	}
}

func TestEnqueue_RejectsWhenBufferFull(t *testing.T) {
	f := newFixture()
	// Pool not started, so the single buffer slot fills and stays full.
	if !f.pipe.Enqueue(uuid.New()) {
		t.Fatalf("first enqueue should fit in buffer")
	}
	if f.pipe.Enqueue(uuid.New()) {
		t.Fatalf("second enqueue should be rejected")
	}
}
