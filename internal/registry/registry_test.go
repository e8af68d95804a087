package registry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCreateStartsPending(t *testing.T) {
	r := New()

	created := r.Create([]int64{1, 2})
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, 1, r.Len())
	require.Equal(t, StatusPending, created.Status)
	require.Equal(t, []int64{1, 2}, created.ItemsTotal)
	require.Empty(t, created.ItemsSucceeded)
	require.Empty(t, created.ItemsFailed)
	require.False(t, created.CreatedAt.IsZero())
	require.Nil(t, created.CompletedAt)

	job, ok := r.Get(created.ID)
	require.True(t, ok)
	require.Equal(t, created, job)
}

func TestJobCompletesWhenAllSlotsDecided(t *testing.T) {
	r := New()
	id := r.Create([]int64{1, 2}).ID
	r.Run(id)

	r.CompleteItem(id, 0, &match.Record{PrimaryID: 1})

	job, _ := r.Get(id)
	require.Equal(t, StatusRunning, job.Status)
	require.Equal(t, []int64{1}, job.ItemsSucceeded)

	r.FailItem(id, 1, errors.New("no data for primary id 2"))

	job, _ = r.Get(id)
	require.Equal(t, StatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
	require.Equal(t, []int64{1}, job.ItemsSucceeded)
	require.Equal(t, []int64{2}, job.ItemsFailed)
	require.Equal(t, "no data for primary id 2", job.Errors[2])
	require.Equal(t, "Processed 1 of 2 lists successfully.", job.Message)
}

func TestSucceededAndFailedSetsNeverIntersect(t *testing.T) {
	r := New()

	// Duplicate primary ids occupy independent slots; a mixed outcome
	// lands the id in the failed set only.
	id := r.Create([]int64{5, 5, 6}).ID
	r.Run(id)

	r.CompleteItem(id, 0, &match.Record{PrimaryID: 5})
	r.FailItem(id, 1, errors.New("boom"))
	r.CompleteItem(id, 2, &match.Record{PrimaryID: 6})

	job, _ := r.Get(id)
	require.Equal(t, StatusCompleted, job.Status)
	require.Equal(t, []int64{5, 6}, job.ItemsTotal)
	require.Equal(t, []int64{6}, job.ItemsSucceeded)
	require.Equal(t, []int64{5}, job.ItemsFailed)
}

func TestSlotOutcomeIsWriteOnce(t *testing.T) {
	r := New()
	id := r.Create([]int64{1}).ID
	r.Run(id)

	r.CompleteItem(id, 0, &match.Record{PrimaryID: 1})
	r.FailItem(id, 0, errors.New("late failure"))

	job, _ := r.Get(id)
	require.Equal(t, StatusCompleted, job.Status)
	require.Equal(t, []int64{1}, job.ItemsSucceeded)
	require.Empty(t, job.ItemsFailed)
}

func TestFailJobIsTerminal(t *testing.T) {
	r := New()
	id := r.Create([]int64{1, 2}).ID
	r.Run(id)

	r.FailJob(id, errors.New("dispatch context canceled"))

	job, _ := r.Get(id)
	require.Equal(t, StatusFailed, job.Status)
	require.NotNil(t, job.CompletedAt)

	// Late item writes against a terminal job are discarded.
	r.CompleteItem(id, 0, &match.Record{PrimaryID: 1})

	job, _ = r.Get(id)
	require.Equal(t, StatusFailed, job.Status)
	require.Empty(t, job.ItemsSucceeded)
}

func TestLateWriteAfterDeleteDoesNotRecreateJob(t *testing.T) {
	r := New()
	id := r.Create([]int64{1}).ID
	r.Run(id)

	require.True(t, r.Delete(id))
	require.Equal(t, 0, r.Len())

	r.CompleteItem(id, 0, &match.Record{PrimaryID: 1})

	_, ok := r.Get(id)
	require.False(t, ok)
	require.Equal(t, 0, r.Len())
}

func TestDeleteUnknownReportsFalse(t *testing.T) {
	r := New()
	require.False(t, r.Delete(uuid.New()))
}

func TestSnapshotsAreStable(t *testing.T) {
	r := New()
	id := r.Create([]int64{1}).ID
	r.Run(id)
	r.CompleteItem(id, 0, &match.Record{PrimaryID: 1})

	first, _ := r.Get(id)
	second, _ := r.Get(id)
	require.Equal(t, first, second)

	// Mutating a snapshot must not leak into the registry.
	first.ItemsSucceeded[0] = 99
	third, _ := r.Get(id)
	require.Equal(t, []int64{1}, third.ItemsSucceeded)
}

func TestListOrdersNewestFirst(t *testing.T) {
	r := New()

	first := r.Create([]int64{1}).ID
	time.Sleep(time.Millisecond)
	second := r.Create([]int64{2}).ID

	jobs := r.List()
	require.Len(t, jobs, 2)
	require.Equal(t, second, jobs[0].ID)
	require.Equal(t, first, jobs[1].ID)
}
