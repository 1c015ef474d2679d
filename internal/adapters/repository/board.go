package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/pkg/metrics"
)

// OfferBoard is an in-memory Board backed by a treap.
type OfferBoard struct {
	mu   sync.RWMutex
	root *node
	best map[string]model.Offer
	now  func() time.Time
}

var _ Board = (*OfferBoard)(nil)

// NewOfferBoard constructs an empty board.
func NewOfferBoard(opts ...Option) *OfferBoard {
	b := &OfferBoard{
		best: make(map[string]model.Offer),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	metrics.UpdateBoardSize(0)
	return b
}

// RecordBest implements Board in O(log n) expected time. Ties keep the
// earlier offer.
func (b *OfferBoard) RecordBest(_ context.Context, o model.Offer) (bool, error) { //nolint:gocritic // hugeParam: offers are stored by value
	if o.PlayerID == "" {
		return false, fmt.Errorf("%w: player id is required", ErrInvalidOffer)
	}
	if o.RecordedAt.IsZero() {
		o.RecordedAt = b.now()
	}
	next := toCents(o.FinalAAV)

	b.mu.Lock()
	old, ok := b.best[o.PlayerID]
	if ok {
		prev := toCents(old.FinalAAV)
		if next <= prev {
			b.mu.Unlock()
			return false, nil
		}
		b.root = remove(b.root, o.PlayerID, prev)
	}
	b.best[o.PlayerID] = o
	b.root = insert(b.root, o.PlayerID, next)
	size := len(b.best)
	b.mu.Unlock()

	if !ok {
		metrics.UpdateBoardSize(size)
	}
	return true, nil
}

// Rank implements Board in O(log n).
func (b *OfferBoard) Rank(_ context.Context, playerID string) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	o, ok := b.best[playerID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Rank: position(b.root, playerID, toCents(o.FinalAAV)), Offer: o}, nil
}

// TopN implements Board.
func (b *OfferBoard) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, min(n, len(b.best)))
	collect(b.root, n, &ids)
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{Rank: i + 1, Offer: b.best[id]}
	}
	return out, nil
}

// Count implements Board.
func (b *OfferBoard) Count(_ context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.best)
}
