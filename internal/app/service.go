// Package service wires the valuation engine to the offer queue, the worker
// pool and the offer board, and implements the dependencies required by the
// HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	offerqueue "github.com/okian/aav/internal/adapters/mq/queue"
	workerpool "github.com/okian/aav/internal/adapters/mq/worker"
	"github.com/okian/aav/internal/adapters/repository"
	"github.com/okian/aav/internal/domain/dedupe"
	"github.com/okian/aav/internal/domain/engine"
	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/pressure"
	"github.com/okian/aav/internal/domain/valuation"
	"github.com/okian/aav/pkg/logger"
	"github.com/okian/aav/pkg/metrics"
)

const (
	defaultQueueSize  = 10_000
	defaultDedupeSize = 50_000
	stopTimeout       = 30 * time.Second
)

// Service implements the API dependencies for the valuation system.
type Service struct {
	mu sync.RWMutex

	engine  *engine.Engine
	vc      *valuation.Context
	board   *repository.OfferBoard
	deduper dedupe.Deduper

	// created on Start
	queue *offerqueue.InMemoryQueue
	pool  *workerpool.Pool

	workerCount     int
	queueSize       int
	dedupeSize      int
	poolConcurrency int
	engineOpts      []engine.Option

	started bool
	logger  logger.Logger
}

var _ workerpool.Valuer = (*Service)(nil)

// PoolResult is the outcome of one player in EvaluatePool. Exactly one of
// Recommendation and Error is set.
type PoolResult struct {
	Index          int                    `json:"index"`
	Recommendation *engine.Recommendation `json:"recommendation,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

// SubmitResult acknowledges an offer request.
type SubmitResult struct {
	RequestID string `json:"request_id"`
	Duplicate bool   `json:"duplicate"`
}

// New constructs a Service. Without WithValuationContext the default league
// tables for the current year are used.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       defaultQueueSize,
		dedupeSize:      defaultDedupeSize,
		poolConcurrency: runtime.NumCPU(),
		logger:          logger.GetOrNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.vc == nil {
		s.vc = valuation.NewContext(time.Now().Year())
	}
	s.engine = engine.New(append([]engine.Option{engine.WithLogger(s.logger.Named("engine"))}, s.engineOpts...)...)
	s.board = repository.NewOfferBoard()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start creates the offer queue and starts the worker pool. Workers outlive
// ctx: they stop only when Stop closes the queue and it drains, so offers
// acknowledged before a shutdown signal are still recorded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting valuation service...")

	s.queue = offerqueue.NewInMemoryQueue(offerqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, s.board)
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "valuation service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("season", s.vc.Season()),
	)
	return nil
}

// Stop stops accepting offers and waits for queued ones to be recorded.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping valuation service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "valuation service stopped", logger.Int64("processed", s.pool.Processed()))
}

// Evaluate values one player for one team.
func (s *Service) Evaluate(ctx context.Context, req model.EvaluationRequest) (engine.Recommendation, error) { //nolint:gocritic // hugeParam: request is decoded by value
	start := time.Now()

	oc, err := owner.FromDirectives(req.Directives, req.DynastyID, req.TeamID)
	if err != nil {
		metrics.RecordEvaluationError("directive")
		return engine.Recommendation{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	rec, err := s.engine.Evaluate(ctx, req.Player, s.vc, oc)
	if err != nil {
		if errors.Is(err, player.ErrValidation) {
			metrics.RecordEvaluationError("validation")
			return engine.Recommendation{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		metrics.RecordEvaluationError("internal")
		return engine.Recommendation{}, fmt.Errorf("evaluate %s: %w", req.Player.PlayerID, err)
	}

	group := rec.Group
	if group == "" {
		group = "unknown"
	}
	metrics.RecordEvaluation(group, rec.FinalAAV, float64(time.Since(start).Microseconds())/1000)
	for _, f := range rec.Factors {
		metrics.RecordFactorConfidence(f.Name, f.Confidence)
	}
	for _, step := range rec.Trail {
		metrics.RecordModifierAdjustment(step.ModifierName, step.AdjustmentPct)
	}
	return rec, nil
}

// EvaluatePool values many players for one team concurrently. A player that
// fails validation gets an error entry; only ctx cancellation fails the call.
// Results keep the input order.
func (s *Service) EvaluatePool(ctx context.Context, reqs []model.EvaluationRequest) ([]PoolResult, error) {
	results := make([]PoolResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.poolConcurrency)
	for i := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Index = i
			rec, err := s.Evaluate(gctx, reqs[i])
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Recommendation = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate pool: %w", err)
	}
	return results, nil
}

// Value implements worker.Valuer.
func (s *Service) Value(ctx context.Context, r model.OfferRequest) (model.Offer, error) { //nolint:gocritic // hugeParam: value semantics through the queue
	rec, err := s.Evaluate(ctx, r.Evaluation())
	if err != nil {
		return model.Offer{}, err
	}
	return model.Offer{
		RequestID:        r.RequestID,
		PlayerID:         r.Player.PlayerID,
		TeamID:           r.TeamID,
		Position:         rec.Position,
		FinalAAV:         rec.FinalAAV,
		BaseAAV:          rec.BaseAAV,
		Confidence:       rec.Confidence,
		MaxYears:         rec.MaxYears,
		MaxGuaranteedPct: rec.MaxGuaranteedPct,
	}, nil
}

// SubmitOffer validates r and queues it for valuation. A request ID already
// seen is acknowledged as a duplicate and not queued again. When the queue is
// full the ID is forgotten so the caller may retry.
func (s *Service) SubmitOffer(ctx context.Context, r model.OfferRequest) (SubmitResult, error) { //nolint:gocritic // hugeParam: value semantics through the queue
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return SubmitResult{}, ErrStopped
	}

	if r.Player.PlayerID == "" {
		metrics.RecordOfferRejected("invalid")
		return SubmitResult{}, fmt.Errorf("%w: player.player_id is required", ErrBadRequest)
	}
	if err := r.Player.Validate(); err != nil {
		metrics.RecordOfferRejected("invalid")
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if _, err := owner.FromDirectives(r.Directives, r.DynastyID, r.TeamID); err != nil {
		metrics.RecordOfferRejected("invalid")
		return SubmitResult{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}

	if s.deduper.SeenAndRecord(ctx, r.RequestID) {
		metrics.RecordOfferDuplicate()
		s.logger.Debug(ctx, "duplicate offer skipped", logger.String("request_id", r.RequestID))
		return SubmitResult{RequestID: r.RequestID, Duplicate: true}, nil
	}
	if !s.queue.Enqueue(ctx, r) {
		s.deduper.Unrecord(ctx, r.RequestID)
		metrics.RecordOfferRejected("backpressure")
		return SubmitResult{}, ErrBackpressure
	}
	metrics.RecordOfferAccepted()
	return SubmitResult{RequestID: r.RequestID}, nil
}

// TopN returns the best n offers on the board.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.board.TopN(ctx, n)
}

// Rank returns a player's position on the board.
func (s *Service) Rank(ctx context.Context, playerID string) (repository.Entry, error) {
	return s.board.Rank(ctx, playerID)
}

// ValidateContract checks a proposed structure against the owner's limits.
func (s *Service) ValidateContract(_ context.Context, years int, guaranteedPct float64, d owner.Directives) (pressure.ConstraintReport, error) { //nolint:gocritic // hugeParam: directives are decoded by value
	oc, err := owner.FromDirectives(d, "", "")
	if err != nil {
		return pressure.ConstraintReport{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	report := s.engine.ValidateContract(years, guaranteedPct, oc)
	metrics.RecordConstraintCheck(report.IsValid)
	return report, nil
}

// Season is the season valuations run against.
func (s *Service) Season() int { return s.vc.Season() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"season":      s.vc.Season(),
		"salaryCap":   s.vc.SalaryCap(),
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"boardSize":   s.board.Count(ctx),
		"seenOffers":  s.deduper.Size(),
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["processed"] = s.pool.Processed()
		metrics.UpdateQueueSize(queueLen)
	}
	return stats
}
