// Package dedupe tracks offer request IDs so a resubmitted offer is valued at
// most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen request IDs.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded, recording it if
	// not. The check and the record are one atomic step.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a request rejected downstream (for example by
	// queue backpressure) can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps IDs in insertion order. When bounded, the oldest ID is
// evicted first.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int // <= 0 means unbounded
}

// NewInMemoryDeduper creates a deduper. The default bound is 50,000 IDs.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 {
		for d.order.Len() >= d.maxSize {
			oldest := d.order.Front()
			delete(d.seen, oldest.Value.(string))
			d.order.Remove(oldest)
		}
	}
	d.seen[id] = d.order.PushBack(id)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
