package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/aav/internal/config"
	"github.com/okian/aav/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given AAV_ environment overrides", t, func() {
		t.Setenv("AAV_ADDR", ":8080")
		t.Setenv("AAV_QUEUE_SIZE", "1000")
		t.Setenv("AAV_WORKER_COUNT", "4")
		t.Setenv("AAV_SEASON", "2025")

		convey.Convey("When the configuration is loaded", func() {
			cfg, err := config.Load(context.Background())

			convey.Convey("Then the overrides are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})

			convey.Convey("And a service can be built from it", func() {
				svc, err := newService(context.Background(), cfg, logger.NewNop())
				convey.So(err, convey.ShouldBeNil)
				stats := svc.GetStats()
				convey.So(stats["season"], convey.ShouldEqual, 2025)
				convey.So(stats["workerCount"], convey.ShouldEqual, 4)
				convey.So(stats["queueSize"], convey.ShouldEqual, 1000)
			})
		})
	})

	convey.Convey("Given a league tables file", t, func() {
		path := filepath.Join(t.TempDir(), "tables.yaml")
		err := os.WriteFile(path, []byte("salary_cap: 300000000\n"), 0o600)
		convey.So(err, convey.ShouldBeNil)

		cfg := config.New()
		cfg.LeagueTablesFile = path

		convey.Convey("Then the service values against it", func() {
			svc, err := newService(context.Background(), cfg, logger.NewNop())
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.GetStats()["salaryCap"], convey.ShouldEqual, 300_000_000.0)
		})
	})

	convey.Convey("Given a missing league tables file", t, func() {
		cfg := config.New()
		cfg.LeagueTablesFile = filepath.Join(t.TempDir(), "missing.yaml")

		convey.Convey("Then building the service fails", func() {
			_, err := newService(context.Background(), cfg, logger.NewNop())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestMainHTTPServer(t *testing.T) {
	convey.Convey("Given an HTTP server built from defaults", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cfg := config.New()
		svc, err := newService(ctx, cfg, logger.NewNop())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(ctx, cfg, svc, logger.NewNop())

		convey.Convey("Then the timeouts are set", func() {
			convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)
			convey.So(srv.ReadTimeout, convey.ShouldEqual, readTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
			convey.So(srv.IdleTimeout, convey.ShouldEqual, idleTimeout)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})

		convey.Convey("When the health and metrics endpoints are requested", func() {
			health := httptest.NewRecorder()
			srv.Handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			convey.So(registerRuntimeCollectors(), convey.ShouldBeNil)
			convey.So(registerRuntimeCollectors(), convey.ShouldBeNil)
			m := httptest.NewRecorder()
			srv.Handler.ServeHTTP(m, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			convey.Convey("Then both answer", func() {
				convey.So(health.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(m.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(m.Body.String(), convey.ShouldContainSubstring, "go_goroutines")
			})
		})

		convey.Convey("When an evaluation is posted", func() {
			body := `{"dynasty_id":"d1","team_id":"t1",
				"player":{"player_id":"qb-1","position":"QB","age":29,"overall_rating":95},
				"owner":{"owner_philosophy":"balanced"}}`
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			srv.Handler.ServeHTTP(rec, req)

			convey.Convey("Then a recommendation is returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"final_aav"`)
			})
		})
	})
}

func TestMainServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		cfg := config.New()
		svc, err := newService(context.Background(), cfg, logger.NewNop())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the updater returns once its context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startServiceMetricsUpdater(ctx, svc)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("updater did not stop")
			}
		})
	})
}

func TestMainRun(t *testing.T) {
	convey.Convey("Given an invalid configuration", t, func() {
		t.Setenv("AAV_ADDR", "")

		convey.Convey("Then run fails before listening", func() {
			err := run(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a valid configuration on an ephemeral port", t, func() {
		t.Setenv("AAV_ADDR", "127.0.0.1:0")
		t.Setenv("AAV_LOG_LEVEL", "error")
		t.Setenv("AAV_SHUTDOWN_TIMEOUT", "2s")

		convey.Convey("Then run shuts down cleanly when cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()
			convey.So(run(ctx), convey.ShouldBeNil)
		})
	})
}
