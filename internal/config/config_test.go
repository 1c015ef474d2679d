package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/aav/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it has sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.Season, convey.ShouldEqual, time.Now().Year())
			convey.So(cfg.MaxSecurityAdjustment, convey.ShouldEqual, 0.20)
			convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.TrustProxy, convey.ShouldBeFalse)
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, int64(1<<20))
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting each", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = " " },
			"bad log format":    func(c *config.Config) { c.LogFormat = "xml" },
			"no queue":          func(c *config.Config) { c.QueueSize = 0 },
			"no workers":        func(c *config.Config) { c.WorkerCount = 0 },
			"ancient season":    func(c *config.Config) { c.Season = 1800 },
			"negative cap":      func(c *config.Config) { c.SalaryCap = -1 },
			"premium too large": func(c *config.Config) { c.MaxSecurityAdjustment = 1.5 },
			"no body allowed":   func(c *config.Config) { c.MaxBodyBytes = 0 },
		}

		convey.Convey("Then each is rejected as invalid config", func() {
			for name, mutate := range cases {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(name, convey.ShouldNotBeEmpty)
			}
		})
	})
}
