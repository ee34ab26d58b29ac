package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskmatch/internal/domain/employee"
	"taskmatch/internal/domain/extract"
	"taskmatch/internal/domain/skill"
	"taskmatch/internal/parser"
	"taskmatch/internal/repository"

	"github.com/google/uuid"
)

// CVProcessingPipeline turns uploaded CV text into skill records. Each
// document runs through extraction once; a re-upload replaces all
// CV-sourced records for the employee.
type CVProcessingPipeline struct {
	cvs       repository.CVRepository
	employees repository.EmployeeRepository
	records   repository.SkillRecordRepository
	skills    repository.SkillRepository
	predictor parser.RolePredictor
	log       *log.Logger

	minConfidence float64
	pool          *WorkerPool
}

type Config struct {
	Workers       int
	Buffer        int
	MinConfidence float64
}

func NewCVProcessingPipeline(
	cvs repository.CVRepository,
	employees repository.EmployeeRepository,
	records repository.SkillRecordRepository,
	skills repository.SkillRepository,
	logger *log.Logger,
	cfg Config,
) *CVProcessingPipeline {
	if logger == nil {
		logger = log.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = workers * 8
	}
	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = extract.DefaultMinConfidence
	}

	return &CVProcessingPipeline{
		cvs:           cvs,
		employees:     employees,
		records:       records,
		skills:        skills,
		predictor:     parser.KeywordPredictor{},
		log:           logger,
		minConfidence: minConfidence,
		pool:          NewWorkerPool(workers, buffer),
	}
}

// Start launches the workers and drains results until ctx is cancelled.
func (p *CVProcessingPipeline) Start(ctx context.Context) {
	results := p.pool.Run(ctx)
	go func() {
		for range results {
		}
	}()
}

func (p *CVProcessingPipeline) Stop() {
	p.pool.Close()
}

// SetPredictor swaps in an external role classifier. The keyword
// fallback stays in place when pred is nil.
func (p *CVProcessingPipeline) SetPredictor(pred parser.RolePredictor) {
	if pred != nil {
		p.predictor = pred
	}
}

// Enqueue implements the upload path's queue. It never blocks; a full
// buffer reports false so the caller can fail the document.
func (p *CVProcessingPipeline) Enqueue(docID uuid.UUID) bool {
	if p == nil || docID == uuid.Nil {
		return false
	}
	return p.pool.TrySubmit(func(ctx context.Context) error {
		return p.Process(ctx, docID)
	})
}

// RunPending processes every document stuck in PROCESSING, for the
// standalone pipeline command.
func (p *CVProcessingPipeline) RunPending(ctx context.Context, limit int) error {
	docs, err := p.cvs.ListByStatus(ctx, employee.CVProcessing, limit)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.Process(ctx, doc.ID); err != nil {
			p.log.Printf("pipeline=cv_processing status=error cv_id=%s err=%v", doc.ID, err)
		}
	}
	return nil
}

func (p *CVProcessingPipeline) Process(ctx context.Context, docID uuid.UUID) (err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cv processing panic: %v", r)
			_ = p.cvs.SetStatus(ctx, docID, employee.CVFailed, err.Error())
			p.log.Printf("pipeline=cv_processing status=panic cv_id=%s err=%v duration=%s", docID, r, time.Since(start))
		}
	}()

	doc, err := p.cvs.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	extracted := extract.Extract(doc.ExtractedText, p.minConfidence)

	recs := make([]employee.SkillRecord, 0, len(extracted))
	for _, ex := range extracted {
		recs = append(recs, employee.SkillRecord{
			ID:         uuid.New(),
			EmployeeID: doc.EmployeeID,
			Name:       ex.Name,
			Source:     employee.SourceCV,
			Confidence: ex.Confidence,
		})
	}

	if err := p.records.ReplaceBySource(ctx, doc.EmployeeID, employee.SourceCV, recs); err != nil {
		_ = p.cvs.SetStatus(ctx, doc.ID, employee.CVFailed, err.Error())
		p.log.Printf("pipeline=cv_processing status=error cv_id=%s employee_id=%s err=%v duration=%s", doc.ID, doc.EmployeeID, err, time.Since(start))
		return err
	}

	p.registerInCatalog(ctx, extracted)
	p.updateEmployeeDetails(ctx, doc)

	if err := p.cvs.SetStatus(ctx, doc.ID, employee.CVReady, ""); err != nil {
		return err
	}

	p.log.Printf("pipeline=cv_processing status=ok cv_id=%s employee_id=%s skills=%d duration=%s", doc.ID, doc.EmployeeID, len(recs), time.Since(start))
	return nil
}

// registerInCatalog keeps the shared skills table in step with what
// extraction has actually seen.
func (p *CVProcessingPipeline) registerInCatalog(ctx context.Context, extracted []extract.Extracted) {
	if p.skills == nil {
		return
	}
	for _, ex := range extracted {
		if !skill.Known(skill.NormalizeKey(ex.Name)) {
			continue
		}
		if _, err := p.skills.UpsertSkill(ctx, ex.Name, ""); err != nil {
			p.log.Printf("pipeline=cv_processing status=warn op=catalog_upsert skill=%q err=%v", ex.Name, err)
		}
	}
}

// updateEmployeeDetails backfills name and title from the CV when the
// profile has gaps. Existing values are never overwritten.
func (p *CVProcessingPipeline) updateEmployeeDetails(ctx context.Context, doc employee.CVDocument) {
	e, err := p.employees.GetByID(ctx, doc.EmployeeID)
	if err != nil {
		return
	}

	details := parser.ExtractDetails(doc.ExtractedText)

	changed := false
	if e.Name == "" && details.Name != "" {
		e.Name = details.Name
		changed = true
	}
	if e.Title == "" {
		title := details.Role
		if title == "" && p.predictor != nil {
			if predicted, ok := p.predictor.PredictRole(parser.CleanText(doc.ExtractedText)); ok {
				title = predicted
			}
		}
		if title != "" {
			e.Title = title
			changed = true
		}
	}

	if changed {
		if _, err := p.employees.Update(ctx, e); err != nil {
			p.log.Printf("pipeline=cv_processing status=warn op=employee_update employee_id=%s err=%v", e.ID, err)
		}
	}
}
