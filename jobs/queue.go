// Package jobs runs the asynchronous thumbnail pipeline: a bounded
// in-process queue fed fire-and-forget by uploads, drained by a small
// pool of workers.
package jobs

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Job identifies one thumbnail request. Delivery is at-least-once in
// principle; regeneration is idempotent so redelivery is harmless.
type Job struct {
	UserID uuid.UUID
	FileID uuid.UUID
}

type Queue struct {
	jobs chan Job
}

func NewQueue(size int) *Queue {
	return &Queue{jobs: make(chan Job, size)}
}

// Enqueue submits a job without blocking. A full queue drops the job
// and returns false; the caller logs and moves on — upload success
// never depends on queue capacity.
func (q *Queue) Enqueue(userID, fileID uuid.UUID) bool {
	select {
	case q.jobs <- Job{UserID: userID, FileID: fileID}:
		return true
	default:
		return false
	}
}

// Run starts the worker pool and returns. Each worker handles one job
// at a time; a failed job is logged and never retried.
func (q *Queue) Run(ctx context.Context, workers int, handler func(context.Context, Job) error) {
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-q.jobs:
					if err := handler(ctx, job); err != nil {
						log.Printf("thumbnail job for file %s failed: %v", job.FileID, err)
					}
				}
			}
		}()
	}
}
