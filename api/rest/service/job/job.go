package job

import (
	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/registry"
	"github.com/matchd-cloud/matchd/internal/render"
	"github.com/matchd-cloud/matchd/internal/scheduler"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned for unknown job identifiers.
	ErrNotFound = errors.New("job not found")

	// ErrNotCompleted is returned when results are requested for a
	// job that has not finished processing.
	ErrNotCompleted = errors.New("job not completed")
)

// Service exposes job operations to the transport layer. It owns no
// state of its own; the scheduler and registry handles are passed in
// explicitly at construction.
type Service struct {
	scheduler *scheduler.Scheduler
	registry  *registry.Registry
}

func New(sched *scheduler.Scheduler, reg *registry.Registry) *Service {
	return &Service{scheduler: sched, registry: reg}
}

// Submit hands the batch to the scheduler and returns the pending
// job's snapshot, taken before any item starts executing.
func (s *Service) Submit(batch *scheduler.Batch) (*registry.Job, error) {
	return s.scheduler.Submit(batch)
}

// Status returns the job's summary.
func (s *Service) Status(id uuid.UUID) (*registry.Job, error) {
	job, ok := s.registry.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	return job, nil
}

// Details couples the summary with the per-item error map.
type Details struct {
	*registry.Job
	Errors map[int64]string `json:"errors"`
}

// Details returns the summary plus per-item error descriptions.
func (s *Service) Details(id uuid.UUID) (*Details, error) {
	job, ok := s.registry.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	errs := job.Errors
	if errs == nil {
		errs = map[int64]string{}
	}

	return &Details{Job: job, Errors: errs}, nil
}

// List returns summaries of all tracked jobs.
func (s *Service) List() []*registry.Job {
	return s.registry.List()
}

// Results aggregates the completed job's per-item records.
func (s *Service) Results(id uuid.UUID) (*render.Result, error) {
	job, ok := s.registry.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	if job.Status != registry.StatusCompleted {
		return nil, errors.Wrapf(ErrNotCompleted, "current status: %s", job.Status)
	}

	return render.Aggregate(job.ID, job.Results), nil
}

// Download renders the aggregated results in the requested format.
func (s *Service) Download(id uuid.UUID, format string) ([]byte, render.Renderer, error) {
	result, err := s.Results(id)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := render.For(format)
	if err != nil {
		return nil, nil, err
	}

	data, err := renderer.Render(result)
	if err != nil {
		return nil, nil, err
	}

	return data, renderer, nil
}

// Delete removes the job record. In-flight items for the job keep
// running but their outcomes are discarded.
func (s *Service) Delete(id uuid.UUID) error {
	if !s.registry.Delete(id) {
		return ErrNotFound
	}

	return nil
}
