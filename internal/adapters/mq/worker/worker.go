// Package worker values queued offer requests and records the results on the
// offer board.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/pkg/logger"
	"github.com/okian/aav/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2 // valuation is CPU bound
	poolShutdownTimeout     = 30 * time.Second
)

// Valuer prices an offer request.
type Valuer interface {
	Value(ctx context.Context, r model.OfferRequest) (model.Offer, error)
}

// Recorder keeps the best offer per player.
type Recorder interface {
	RecordBest(ctx context.Context, o model.Offer) (bool, error)
}

// Queue is the consuming side of the request queue.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.OfferRequest
}

// Worker processes requests until stopped.
type Worker interface {
	// Run blocks until ctx is done, Shutdown is called or the queue drains.
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker is one consumer of the queue.
type InMemoryWorker struct {
	queue    Queue
	valuer   Valuer
	recorder Recorder
	name     string

	shutdown chan struct{}
	done     chan struct{}

	processed *atomic.Int64
	logger    logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, v Valuer, r Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		valuer:    v,
		recorder:  r,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		processed: &atomic.Int64{},
		logger:    logger.GetOrNop().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run implements Worker.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case r, ok := <-requests:
			if !ok {
				return
			}
			if err := w.process(ctx, r); err != nil {
				w.logger.Error(ctx, "offer not recorded",
					logger.String("request_id", r.RequestID),
					logger.String("worker", w.name),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown implements Worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s shutdown: %w", w.name, ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, r model.OfferRequest) error { //nolint:gocritic // hugeParam: value semantics through the channel
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	offer, err := w.valuer.Value(ctx, r)
	if err != nil {
		return fmt.Errorf("value request %s: %w", r.RequestID, err)
	}
	improved, err := w.recorder.RecordBest(ctx, offer)
	if err != nil {
		return fmt.Errorf("record offer %s: %w", r.RequestID, err)
	}
	w.processed.Add(1)
	if improved {
		w.logger.Debug(ctx, "new best offer",
			logger.String("player_id", offer.PlayerID),
			logger.String("team_id", offer.TeamID),
			logger.Float64("final_aav", offer.FinalAAV),
		)
	}
	return nil
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	processed atomic.Int64
	logger    logger.Logger
}

// NewPool creates a pool. A count below one uses twice the CPU count.
func NewPool(workerCount int, q Queue, v Valuer, r Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.GetOrNop().Named("worker-pool"),
	}
	for i := range p.workers {
		w := NewInMemoryWorker(q, v, r, WithName("worker-"+strconv.Itoa(i)))
		w.processed = &p.processed
		p.workers[i] = w
	}
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerActiveCount(len(p.workers))
}

// Size is the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed is the number of requests valued and recorded so far.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Shutdown closes the queue, if it can be closed, and waits for the workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return nil
}
