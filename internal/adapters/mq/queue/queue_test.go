package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/aav/internal/domain/model"
)

func offer(id string) model.OfferRequest {
	return model.OfferRequest{RequestID: id, TeamID: "team-1", SubmittedAt: time.Now()}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if !q.Enqueue(ctx, offer("r1")) {
		t.Fatal("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.RequestID != "r1" {
		t.Errorf("expected r1, got %v", got.RequestID)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for _, id := range []string{"r1", "r2"} {
		if !q.Enqueue(ctx, offer(id)) {
			t.Fatalf("expected enqueue of %s to succeed", id)
		}
	}
	if q.Enqueue(ctx, offer("r3")) {
		t.Error("expected enqueue to fail when full")
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, offer("r1")) {
		t.Error("expected enqueue to fail with a cancelled context")
	}
}

func TestInMemoryQueue_CloseDrains(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		q.Enqueue(ctx, offer(fmt.Sprintf("r%d", i)))
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, offer("late")) {
		t.Error("expected enqueue after close to fail")
	}

	var n int
	for range q.Dequeue(ctx) {
		n++
	}
	if n != 5 {
		t.Errorf("expected 5 drained requests, got %d", n)
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Enqueue(ctx, offer(fmt.Sprintf("g%d-%d", g, i)))
			}
		}(g)
	}
	wg.Wait()

	if l := q.Len(ctx); l != 1000 {
		t.Errorf("expected 1000 queued, got %d", l)
	}
}
