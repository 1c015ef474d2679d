// Package queue buffers offer requests between the HTTP layer and the
// valuation workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a request. It returns false when the queue is full, closed
	// or ctx is done.
	Enqueue(ctx context.Context, r model.OfferRequest) bool

	// Dequeue returns a channel of requests. It closes when the queue is
	// closed and drained, or when ctx is done.
	Dequeue(ctx context.Context) <-chan model.OfferRequest

	Len(ctx context.Context) int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	requests chan model.OfferRequest
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue with the given options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.requests = make(chan model.OfferRequest, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r model.OfferRequest) bool { //nolint:gocritic // hugeParam: value semantics through the channel
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed || ctx.Err() != nil {
		return false
	}
	select {
	case q.requests <- r:
		metrics.UpdateQueueSize(len(q.requests))
		return true
	default:
		return false
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan model.OfferRequest {
	out := make(chan model.OfferRequest)
	go func() {
		defer close(out)
		for r := range q.requests {
			select {
			case out <- r:
				metrics.UpdateQueueSize(len(q.requests))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len implements Queue.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.requests)
}

// Close stops accepting requests. Buffered requests are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.requests)
	q.closed = true
	return nil
}

// IsClosed implements Queue.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
