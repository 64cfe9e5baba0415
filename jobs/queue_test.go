package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueNeverBlocks(t *testing.T) {
	q := NewQueue(2)

	assert.True(t, q.Enqueue(uuid.New(), uuid.New()))
	assert.True(t, q.Enqueue(uuid.New(), uuid.New()))
	// No worker running; the third job must be dropped, not block.
	assert.False(t, q.Enqueue(uuid.New(), uuid.New()))
}

func TestRunProcessesJobs(t *testing.T) {
	q := NewQueue(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	seen := make(map[uuid.UUID]bool)
	done := make(chan struct{}, 8)

	q.Run(ctx, 2, func(ctx context.Context, job Job) error {
		mu.Lock()
		seen[job.FileID] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	})

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.True(t, q.Enqueue(uuid.New(), id))
	}

	for range ids {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, id := range ids {
		assert.True(t, seen[id])
	}
}

func TestRunKeepsGoingAfterFailedJob(t *testing.T) {
	q := NewQueue(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan uuid.UUID, 8)
	q.Run(ctx, 1, func(ctx context.Context, job Job) error {
		done <- job.FileID
		if job.UserID == uuid.Nil {
			return assert.AnError
		}
		return nil
	})

	bad := uuid.New()
	good := uuid.New()
	require.True(t, q.Enqueue(uuid.Nil, bad))
	require.True(t, q.Enqueue(uuid.New(), good))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a failed job")
		}
	}
}
