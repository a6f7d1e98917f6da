package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/labelforge/api/internal/model"
	"github.com/labelforge/api/internal/printer"
	"github.com/labelforge/api/internal/render"
)

// PrintService drives one print request through the full pipeline:
// resolve → layout → render → dispatch. Every request resolves to Submitted
// or Failed before Print returns; there is no pending state visible outside.
type PrintService struct {
	resolver   *render.Resolver
	layout     *render.LayoutEngine
	renderer   *render.Renderer
	dispatcher printer.Dispatcher
	store      JobStore
}

func NewPrintService(
	resolver *render.Resolver,
	layout *render.LayoutEngine,
	renderer *render.Renderer,
	dispatcher printer.Dispatcher,
	store JobStore,
) *PrintService {
	return &PrintService{
		resolver:   resolver,
		layout:     layout,
		renderer:   renderer,
		dispatcher: dispatcher,
		store:      store,
	}
}

func (s *PrintService) Print(ctx context.Context, req *model.PrintRequest) (*model.PrintResponse, error) {
	opts := req.Options
	if opts.DPI == 0 {
		opts.DPI = model.DefaultDPI
	}

	job := &model.PrintJob{
		ID:        uuid.New().String(),
		Text:      req.Text,
		LabelSize: req.LabelSize,
		Options:   opts,
		Status:    model.JobStatusQueued,
		CreatedAt: time.Now(),
	}

	// Validation and layout run before any artifact or printer side effect.
	canvas, err := s.resolver.Resolve(req.LabelSize, opts.DPI)
	if err != nil {
		return nil, s.fail(ctx, job, err)
	}

	layout, err := s.layout.Layout(req.Text, canvas, opts)
	if err != nil {
		return nil, s.fail(ctx, job, err)
	}
	job.Layout = &layout

	if !layout.Fits {
		return nil, s.fail(ctx, job, model.NewError(model.ErrLayoutDoesNotFit,
			"text does not fit a %dx%dpx canvas even at the minimum font size",
			canvas.WidthPx, canvas.HeightPx))
	}

	label, err := s.renderer.Render(canvas, layout, req.Text, opts, job.ID)
	if err != nil {
		return nil, s.fail(ctx, job, err)
	}
	job.ArtifactPath = label.Path
	job.Status = model.JobStatusRendered
	s.save(ctx, job)

	receipt, err := s.dispatcher.Submit(ctx, label.Path, req.LabelSize)
	if err != nil {
		// The artifact stays on disk for diagnosis of dispatch failures.
		return nil, s.fail(ctx, job, err)
	}

	job.Status = model.JobStatusSubmitted
	job.ReceiptID = receipt.ID
	s.resolve(job)
	s.save(ctx, job)

	return &model.PrintResponse{
		Success:   true,
		Message:   fmt.Sprintf("label submitted to %s as %s", receipt.Printer, receipt.Media),
		JobID:     job.ID,
		ImagePath: label.Path,
	}, nil
}

// GetJob returns the persisted record of an already-resolved job.
func (s *PrintService) GetJob(ctx context.Context, id string) (*model.PrintJob, error) {
	return s.store.Get(ctx, id)
}

func (s *PrintService) fail(ctx context.Context, job *model.PrintJob, err error) error {
	job.Status = model.JobStatusFailed
	job.ErrorKind = model.KindOf(err)
	job.Error = err.Error()
	s.resolve(job)
	s.save(ctx, job)
	return err
}

func (s *PrintService) resolve(job *model.PrintJob) {
	now := time.Now()
	job.ResolvedAt = &now
}

// save is best-effort: losing the audit record must not fail a print the
// printer already accepted, and must not mask the real pipeline error.
func (s *PrintService) save(ctx context.Context, job *model.PrintJob) {
	if err := s.store.Save(ctx, job); err != nil {
		log.Printf("Warning: job %s not persisted: %v", job.ID, err)
	}
}
