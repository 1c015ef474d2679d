package api

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIPLimiterEviction(t *testing.T) {
	Convey("Given a limiter with a controllable clock", t, func() {
		now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
		l := newIPLimiter(10, 10)
		l.now = func() time.Time { return now }
		l.lastSweep = now

		for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
			l.get(ip)
		}
		So(l.size(), ShouldEqual, 3)

		Convey("When clients stay idle past the TTL", func() {
			now = now.Add(limiterIdleTTL + time.Second)
			l.get("10.0.0.4")

			Convey("Then only the new client keeps a bucket", func() {
				So(l.size(), ShouldEqual, 1)
			})
		})

		Convey("When one client keeps calling", func() {
			now = now.Add(limiterIdleTTL / 2)
			active := l.get("10.0.0.1")
			now = now.Add(limiterIdleTTL/2 + time.Second)
			l.get("10.0.0.4")

			Convey("Then its bucket survives the sweep", func() {
				So(l.size(), ShouldEqual, 2)
				So(l.get("10.0.0.1"), ShouldEqual, active)
			})
		})

		Convey("When less than a sweep interval has passed", func() {
			now = now.Add(limiterSweepInterval / 2)
			l.get("10.0.0.4")

			Convey("Then nothing is evicted", func() {
				So(l.size(), ShouldEqual, 4)
			})
		})
	})
}
