package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/event"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/matchd-cloud/matchd/internal/metrics"
)

// Status enumerates the lifecycle states of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type slotStatus int

const (
	slotPending slotStatus = iota
	slotSucceeded
	slotFailed
)

// slot tracks the outcome of a single batch item. Duplicate primary
// identifiers occupy independent slots.
type slot struct {
	primaryID int64
	status    slotStatus
	err       string
	record    *match.Record
}

type jobRecord struct {
	id          uuid.UUID
	status      Status
	message     string
	createdAt   time.Time
	completedAt *time.Time
	slots       []slot
}

// Job is a read-only snapshot of a tracked job.
type Job struct {
	ID             uuid.UUID                `json:"job_id"`
	Status         Status                   `json:"status"`
	Message        string                   `json:"message"`
	CreatedAt      time.Time                `json:"created_at"`
	CompletedAt    *time.Time               `json:"completed_at,omitempty"`
	ItemsTotal     []int64                  `json:"items_total"`
	ItemsSucceeded []int64                  `json:"items_succeeded"`
	ItemsFailed    []int64                  `json:"items_failed"`
	Errors         map[int64]string         `json:"errors,omitempty"`
	Results        map[int64]*match.Record  `json:"-"`
}

// Registry is the in-process table of job records. All mutation goes
// through it; readers receive copies, never live records.
type Registry struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*jobRecord
	bus  event.Bus
}

func New() *Registry {
	return &Registry{jobs: make(map[uuid.UUID]*jobRecord)}
}

// SetBus attaches an event bus notified of job lifecycle changes.
func (r *Registry) SetBus(bus event.Bus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bus = bus
}

// Create registers a new pending job with one slot per batch item
// and returns its initial snapshot.
func (r *Registry) Create(primaryIDs []int64) *Job {
	slots := make([]slot, len(primaryIDs))
	for i, id := range primaryIDs {
		slots[i] = slot{primaryID: id}
	}

	rec := &jobRecord{
		id:        uuid.New(),
		status:    StatusPending,
		message:   "Job queued for execution.",
		createdAt: time.Now().UTC(),
		slots:     slots,
	}

	r.mu.Lock()
	r.jobs[rec.id] = rec
	snap := rec.snapshot()
	r.mu.Unlock()

	r.publish(event.Event{Type: event.TypeJobCreated, JobID: rec.id})

	return snap
}

// Run transitions a pending job to running. Unknown ids are ignored;
// the job may have been deleted before dispatch began.
func (r *Registry) Run(id uuid.UUID) {
	r.mu.Lock()

	rec, ok := r.jobs[id]
	if !ok || rec.status != StatusPending {
		r.mu.Unlock()
		return
	}

	rec.status = StatusRunning
	rec.message = fmt.Sprintf("Processing %d lists...", len(rec.slots))
	r.mu.Unlock()

	r.publish(event.Event{Type: event.TypeJobRunning, JobID: id})
}

// CompleteItem records a successful outcome for one slot. If this was
// the last undecided slot the job transitions to completed. Writes
// against deleted or terminal jobs are silently discarded.
func (r *Registry) CompleteItem(id uuid.UUID, slotIndex int, record *match.Record) {
	r.recordOutcome(id, slotIndex, slotSucceeded, "", record)
}

// FailItem records a failed outcome for one slot. The error
// description is kept verbatim; siblings are unaffected.
func (r *Registry) FailItem(id uuid.UUID, slotIndex int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.recordOutcome(id, slotIndex, slotFailed, msg, nil)
}

func (r *Registry) recordOutcome(id uuid.UUID, slotIndex int, status slotStatus, errMsg string, record *match.Record) {
	r.mu.Lock()

	rec, ok := r.jobs[id]
	if !ok || terminal(rec.status) || slotIndex < 0 || slotIndex >= len(rec.slots) {
		r.mu.Unlock()
		return
	}

	s := &rec.slots[slotIndex]
	if s.status != slotPending {
		r.mu.Unlock()
		return
	}

	s.status = status
	s.err = errMsg
	s.record = record

	var events []event.Event

	itemType := event.TypeItemSucceeded
	if status == slotFailed {
		itemType = event.TypeItemFailed
	}
	events = append(events, event.Event{Type: itemType, JobID: id, PrimaryID: s.primaryID})

	if done, succeeded := rec.progress(); done {
		now := time.Now().UTC()
		rec.status = StatusCompleted
		rec.completedAt = &now
		rec.message = fmt.Sprintf(
			"Processed %d of %d lists successfully.", succeeded, len(rec.slots))
		metrics.JobsCompleted.Inc()
		events = append(events, event.Event{Type: event.TypeJobCompleted, JobID: id})
	}

	r.mu.Unlock()

	for _, e := range events {
		r.publish(e)
	}
}

// FailJob marks a job failed due to a batch-level fault that
// prevented per-item isolation. Terminal jobs are left untouched.
func (r *Registry) FailJob(id uuid.UUID, err error) {
	r.mu.Lock()

	rec, ok := r.jobs[id]
	if !ok || terminal(rec.status) {
		r.mu.Unlock()
		return
	}

	now := time.Now().UTC()
	rec.status = StatusFailed
	rec.completedAt = &now
	rec.message = "Batch processing failed."
	if err != nil {
		rec.message = fmt.Sprintf("Batch processing failed: %v", err)
	}
	r.mu.Unlock()

	metrics.JobsFailed.Inc()
	r.publish(event.Event{Type: event.TypeJobFailed, JobID: id})
}

// Get returns a snapshot of the job, or false if it is unknown.
func (r *Registry) Get(id uuid.UUID) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.jobs[id]
	if !ok {
		return nil, false
	}

	return rec.snapshot(), true
}

// List returns snapshots of all tracked jobs, newest first.
func (r *Registry) List() []*Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*Job, 0, len(r.jobs))
	for _, rec := range r.jobs {
		jobs = append(jobs, rec.snapshot())
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	return jobs
}

// Delete removes the job record. It reports false for unknown ids.
// In-flight executors for a deleted job discard their outcomes.
func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()

	if _, ok := r.jobs[id]; !ok {
		r.mu.Unlock()
		return false
	}

	delete(r.jobs, id)
	r.mu.Unlock()

	r.publish(event.Event{Type: event.TypeJobDeleted, JobID: id})

	return true
}

// Len returns the number of tracked job records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.jobs)
}

func (r *Registry) publish(e event.Event) {
	r.mu.RLock()
	bus := r.bus
	r.mu.RUnlock()

	if bus == nil {
		return
	}

	e.Timestamp = time.Now().UTC()
	bus.Publish(e)
}

func terminal(s Status) bool {
	return s == StatusCompleted || s == StatusFailed
}

// progress reports whether every slot has an outcome and how many
// succeeded. Callers must hold the registry lock.
func (rec *jobRecord) progress() (done bool, succeeded int) {
	done = true
	for i := range rec.slots {
		switch rec.slots[i].status {
		case slotPending:
			done = false
		case slotSucceeded:
			succeeded++
		}
	}
	return done, succeeded
}

// snapshot derives the read-only view. A primary identifier lands in
// the failed set if any of its slots failed, and in the succeeded set
// only if at least one slot succeeded and none failed; the two sets
// never intersect. Callers must hold the registry lock.
func (rec *jobRecord) snapshot() *Job {
	var (
		total     = make(map[int64]struct{}, len(rec.slots))
		succeeded = make(map[int64]struct{})
		failed    = make(map[int64]struct{})
		errs      map[int64]string
		results   map[int64]*match.Record
	)

	for i := range rec.slots {
		s := &rec.slots[i]
		total[s.primaryID] = struct{}{}

		switch s.status {
		case slotSucceeded:
			succeeded[s.primaryID] = struct{}{}
			if results == nil {
				results = make(map[int64]*match.Record)
			}
			results[s.primaryID] = s.record
		case slotFailed:
			failed[s.primaryID] = struct{}{}
			if errs == nil {
				errs = make(map[int64]string)
			}
			errs[s.primaryID] = s.err
		}
	}

	for id := range failed {
		delete(succeeded, id)
	}

	job := &Job{
		ID:             rec.id,
		Status:         rec.status,
		Message:        rec.message,
		CreatedAt:      rec.createdAt,
		ItemsTotal:     sortedIDs(total),
		ItemsSucceeded: sortedIDs(succeeded),
		ItemsFailed:    sortedIDs(failed),
		Errors:         errs,
		Results:        results,
	}

	if rec.completedAt != nil {
		completed := *rec.completedAt
		job.CompletedAt = &completed
	}

	return job
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
