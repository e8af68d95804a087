package executor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/cache"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/matchd-cloud/matchd/internal/metrics"
	"github.com/matchd-cloud/matchd/internal/registry"
	"github.com/matchd-cloud/matchd/pkg/log"
)

// Executor runs single batch items against the domain computation,
// consulting the fingerprint cache first. Each invocation writes only
// its own slot in the owning job; a failure never touches siblings.
type Executor struct {
	registry *registry.Registry
	cache    *cache.Cache
	computer match.Computer
}

func New(reg *registry.Registry, c *cache.Cache, computer match.Computer) *Executor {
	return &Executor{registry: reg, cache: c, computer: computer}
}

// Execute processes one item and records its outcome. Failed
// computations are terminal for the item in this job run; there is
// no automatic retry.
func (e *Executor) Execute(ctx context.Context, jobID uuid.UUID, slotIndex int, primaryID int64, subIDs []string, refresh bool) {
	start := time.Now()
	metrics.ItemsInFlight.Inc()
	defer func() {
		metrics.ItemsInFlight.Dec()
		metrics.ItemDuration.Observe(time.Since(start).Seconds())
	}()

	key := match.Fingerprint(primaryID, subIDs)

	record, hit, err := e.cache.GetOrCompute(ctx, key, refresh, func(ctx context.Context) (*match.Record, error) {
		return e.computer.Compute(ctx, primaryID, subIDs)
	})
	if err != nil {
		log.Warn("item computation failed",
			"job_id", jobID,
			"primary_id", primaryID,
			"error", err)
		metrics.ItemsExecuted.WithLabelValues(metrics.OutcomeFailed).Inc()
		e.registry.FailItem(jobID, slotIndex, err)
		return
	}

	if hit {
		log.Debug("serving item from cache", "job_id", jobID, "primary_id", primaryID)
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}

	metrics.ItemsExecuted.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	e.registry.CompleteItem(jobID, slotIndex, record)
}
