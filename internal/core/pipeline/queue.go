// Package pipeline runs background text extraction. Uploads enqueue a
// document ID and return immediately; a small worker pool drains the queue.
package pipeline

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Processor is implemented by the document service.
type Processor interface {
	ProcessDocumentText(ctx context.Context, documentID string) error
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(ctx context.Context, documentID string) error

func (f ProcessorFunc) ProcessDocumentText(ctx context.Context, documentID string) error {
	return f(ctx, documentID)
}

// Queue is an in-memory job queue of document IDs awaiting extraction.
// Easy to swap for a broker later without touching the service layer.
type Queue struct {
	proc       Processor
	jobs       chan string
	jobTimeout time.Duration
}

// NewQueue constructs the queue with a bounded buffer so a burst of uploads
// applies backpressure instead of growing without limit.
func NewQueue(proc Processor, size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{
		proc:       proc,
		jobs:       make(chan string, size),
		jobTimeout: 5 * time.Minute,
	}
}

// Enqueue schedules a document ID for extraction. If the queue is full,
// this call blocks until space frees up.
func (q *Queue) Enqueue(docID string) {
	q.jobs <- docID
}

// Start runs numWorkers goroutines reading from the jobs channel until the
// context is cancelled. Errors from individual documents are logged, never
// fatal to the pool.
func (q *Queue) Start(ctx context.Context, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	for w := 1; w <= numWorkers; w++ {
		w := w
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					log.Printf("pipeline: worker %d shutting down", w)
					return nil
				case docID := <-q.jobs:
					q.processOne(docID, w)
				}
			}
		})
	}
	go func() {
		_ = g.Wait()
	}()
}

// processOne gives each job its own timeout, detached from the upload
// request context that triggered it.
func (q *Queue) processOne(docID string, worker int) {
	ctx, cancel := context.WithTimeout(context.Background(), q.jobTimeout)
	defer cancel()

	log.Printf("pipeline: worker %d processing document %s", worker, docID)
	if err := q.proc.ProcessDocumentText(ctx, docID); err != nil {
		log.Printf("pipeline: document %s: %v", docID, err)
	}
}
