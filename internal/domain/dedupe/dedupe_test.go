package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aav/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When an offer id is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "offer-1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a resubmission is reported as seen", func() {
				So(d.SeenAndRecord(ctx, "offer-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording allows a retry", func() {
				d.Unrecord(ctx, "offer-1")
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "offer-1"), ShouldBeFalse)
			})
		})

		Convey("When an unknown id is unrecorded", func() {
			d.Unrecord(ctx, "never-seen")
			So(d.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 1; i <= 4; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("offer-%d", i))
		}

		Convey("Then the oldest id is evicted first", func() {
			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord(ctx, "offer-4"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "offer-2"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "offer-1"), ShouldBeFalse)
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 1000; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("offer-%d", i))
		}
		So(d.Size(), ShouldEqual, 1000)
	})
}

func TestDeduperConcurrency(t *testing.T) {
	ctx := context.Background()
	d := dedupe.NewInMemoryDeduper()

	var fresh atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if !d.SeenAndRecord(ctx, fmt.Sprintf("offer-%d", i)) {
					fresh.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	Convey("Each id is reported new exactly once across goroutines", t, func() {
		So(fresh.Load(), ShouldEqual, 200)
		So(d.Size(), ShouldEqual, 200)
	})
}
