package scheduler

import (
	"context"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/executor"
	"github.com/matchd-cloud/matchd/internal/metrics"
	"github.com/matchd-cloud/matchd/internal/registry"
	"github.com/matchd-cloud/matchd/internal/worker"
	"github.com/matchd-cloud/matchd/pkg/log"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyBatch rejects submissions without items.
	ErrEmptyBatch = errors.New("batch must contain at least one item")

	// ErrInvalidItem rejects items without sub-identifiers.
	ErrInvalidItem = errors.New("item must contain at least one sub id")
)

// Item is one unit of work within a batch.
type Item struct {
	PrimaryID int64    `json:"primary_id"`
	SubIDs    []string `json:"sub_ids"`
}

// Batch is a submitted collection of independent items processed as
// one job. Refresh bypasses the cache read path for every item.
type Batch struct {
	Items   []Item `json:"items"`
	Refresh bool   `json:"refresh"`
}

// Scheduler accepts batches, creates job records, and dispatches one
// executor task per item onto a bounded worker pool. Submission never
// blocks on item execution.
type Scheduler struct {
	ctx      context.Context
	registry *registry.Registry
	pool     *worker.Pool
	executor *executor.Executor
}

// New creates a Scheduler. The context bounds all dispatched work;
// canceling it stops further dispatch and fails affected jobs.
func New(ctx context.Context, reg *registry.Registry, pool *worker.Pool, exec *executor.Executor) *Scheduler {
	return &Scheduler{ctx: ctx, registry: reg, pool: pool, executor: exec}
}

// Submit validates the batch, creates a pending job, and returns its
// pending snapshot immediately. Item execution proceeds
// asynchronously.
func (s *Scheduler) Submit(batch *Batch) (*registry.Job, error) {
	if batch == nil || len(batch.Items) == 0 {
		return nil, ErrEmptyBatch
	}

	primaryIDs := make([]int64, len(batch.Items))
	for i, item := range batch.Items {
		if len(item.SubIDs) == 0 {
			return nil, errors.Wrapf(ErrInvalidItem, "primary id %d", item.PrimaryID)
		}
		primaryIDs[i] = item.PrimaryID
	}

	job := s.registry.Create(primaryIDs)
	metrics.JobsSubmitted.Inc()

	log.Info("job submitted",
		"job_id", job.ID,
		"items", len(batch.Items),
		"refresh", batch.Refresh)

	go s.dispatch(job.ID, batch)

	return job, nil
}

// dispatch transitions the job to running and submits one executor
// task per item. A dispatch fault before all items are handed off is
// a batch-level failure; items already dispatched discard their
// outcomes once the job is terminal.
func (s *Scheduler) dispatch(id uuid.UUID, batch *Batch) {
	s.registry.Run(id)

	for i := range batch.Items {
		var (
			slotIndex = i
			item      = batch.Items[i]
		)

		err := s.pool.Submit(s.ctx, func() {
			s.executor.Execute(s.ctx, id, slotIndex, item.PrimaryID, item.SubIDs, batch.Refresh)
		})
		if err != nil {
			log.Error("batch dispatch aborted", "job_id", id, "error", err)
			s.registry.FailJob(id, err)
			return
		}
	}
}
