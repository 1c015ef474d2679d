package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/aav/internal/adapters/http/api"
	"github.com/okian/aav/internal/adapters/repository"
	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/engine"
	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/pressure"
	"github.com/okian/aav/internal/domain/valuation"
)

// mockDeps implements api.Dependencies.
type mockDeps struct {
	mu        sync.Mutex
	submitted []model.OfferRequest
	submitErr error
	duplicate bool
	board     []api.Entry
}

func (m *mockDeps) Evaluate(_ context.Context, req model.EvaluationRequest) (engine.Recommendation, error) { //nolint:gocritic // test double
	if req.Player.OverallRating == nil {
		return engine.Recommendation{}, fmt.Errorf("%w: %w", service.ErrBadRequest, &player.ValidationError{Field: "overall_rating", Reason: "is required"})
	}
	return engine.Recommendation{PlayerID: req.Player.PlayerID, Position: req.Player.Position, FinalAAV: 1_000_000}, nil
}

func (m *mockDeps) EvaluatePool(ctx context.Context, reqs []model.EvaluationRequest) ([]service.PoolResult, error) {
	out := make([]service.PoolResult, len(reqs))
	for i := range reqs {
		rec, err := m.Evaluate(ctx, reqs[i])
		out[i].Index = i
		if err != nil {
			out[i].Error = err.Error()
			continue
		}
		out[i].Recommendation = &rec
	}
	return out, nil
}

func (m *mockDeps) SubmitOffer(_ context.Context, r model.OfferRequest) (service.SubmitResult, error) { //nolint:gocritic // test double
	if m.submitErr != nil {
		return service.SubmitResult{}, m.submitErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, r)
	return service.SubmitResult{RequestID: r.RequestID, Duplicate: m.duplicate}, nil
}

func (m *mockDeps) TopN(_ context.Context, n int) ([]api.Entry, error) {
	if n > len(m.board) {
		return m.board, nil
	}
	return m.board[:n], nil
}

func (m *mockDeps) Rank(_ context.Context, playerID string) (api.Entry, error) {
	for _, e := range m.board {
		if e.PlayerID == playerID {
			return e, nil
		}
	}
	return api.Entry{}, repository.ErrNotFound
}

func (m *mockDeps) ValidateContract(_ context.Context, years int, pct float64, d owner.Directives) (pressure.ConstraintReport, error) { //nolint:gocritic // test double
	oc, err := owner.FromDirectives(d, "", "")
	if err != nil {
		return pressure.ConstraintReport{}, fmt.Errorf("%w: %w", service.ErrBadRequest, err)
	}
	return pressure.NewBudgetStanceModifier().ValidateConstraints(years, pct, oc), nil
}

func (m *mockDeps) GetStats() map[string]any {
	return map[string]any{"started": true}
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func board() []api.Entry {
	entry := func(rank int, id string, aav float64) api.Entry {
		return api.Entry{Rank: rank, Offer: model.Offer{PlayerID: id, FinalAAV: aav}}
	}
	return []api.Entry{entry(1, "qb-1", 50_000_000), entry(2, "wr-1", 30_000_000), entry(3, "rb-1", 9_000_000)}
}

func TestServer_Routes(t *testing.T) {
	Convey("Given an API server over mock dependencies", t, func() {
		deps := &mockDeps{board: board()}
		h := api.NewServer(deps, api.WithMaxBoardLimit(2)).Routes(context.Background())

		Convey("Then /healthz answers ok", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"ok"`)
		})

		Convey("And /stats answers the provider's stats", func() {
			w := do(h, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And /metrics serves the Prometheus registry", func() {
			w := do(h, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And /openapi.yaml is served", func() {
			w := do(h, http.MethodGet, "/openapi.yaml", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And unknown routes answer 404", func() {
			w := do(h, http.MethodGet, "/leaderboard", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestEvaluateHandler(t *testing.T) {
	Convey("Given an API server", t, func() {
		h := api.NewServer(&mockDeps{}, api.WithMaxPoolSize(2)).Routes(context.Background())

		Convey("When a valid player is posted", func() {
			w := do(h, http.MethodPost, "/v1/evaluate", `{"player":{"player_id":"qb-1","position":"QB","overall_rating":90}}`)

			Convey("Then a recommendation comes back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var rec engine.Recommendation
				So(json.Unmarshal(w.Body.Bytes(), &rec), ShouldBeNil)
				So(rec.PlayerID, ShouldEqual, "qb-1")
			})
		})

		Convey("When the body is malformed", func() {
			w := do(h, http.MethodPost, "/v1/evaluate", `{"player":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the player fails validation", func() {
			w := do(h, http.MethodPost, "/v1/evaluate", `{"player":{"position":"QB"}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "overall_rating")
		})

		Convey("When a pool is posted", func() {
			w := do(h, http.MethodPost, "/v1/evaluate/pool",
				`{"team_id":"t1","players":[{"player_id":"a","position":"QB","overall_rating":90},{"player_id":"b","position":"WR"}]}`)

			Convey("Then each player gets a result", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body struct {
					Results []service.PoolResult `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Results, ShouldHaveLength, 2)
				So(body.Results[0].Recommendation, ShouldNotBeNil)
				So(body.Results[1].Error, ShouldNotBeEmpty)
			})
		})

		Convey("When the pool is too large or empty", func() {
			big := do(h, http.MethodPost, "/v1/evaluate/pool",
				`{"players":[{"position":"QB"},{"position":"QB"},{"position":"QB"}]}`)
			empty := do(h, http.MethodPost, "/v1/evaluate/pool", `{"players":[]}`)

			Convey("Then both are rejected", func() {
				So(big.Code, ShouldEqual, http.StatusBadRequest)
				So(big.Body.String(), ShouldContainSubstring, "limit_exceeded")
				So(empty.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestOffersHandler(t *testing.T) {
	const offer = `{"request_id":"req-1","team_id":"t1","player":{"player_id":"qb-1","position":"QB","overall_rating":90},"owner":{"owner_philosophy":"aggressive"}}`

	Convey("Given an API server", t, func() {
		deps := &mockDeps{}
		h := api.NewServer(deps).Routes(context.Background())

		Convey("When an offer is accepted", func() {
			w := do(h, http.MethodPost, "/v1/offers", offer)

			Convey("Then it answers 202 and forwards the request", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(w.Body.String(), ShouldContainSubstring, `"accepted"`)
				So(deps.submitted, ShouldHaveLength, 1)
				So(deps.submitted[0].Directives.OwnerPhilosophy, ShouldEqual, "aggressive")
				So(deps.submitted[0].TeamID, ShouldEqual, "t1")
			})
		})

		Convey("When the offer is a duplicate", func() {
			deps.duplicate = true
			w := do(h, http.MethodPost, "/v1/offers", offer)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"duplicate":true`)
		})

		Convey("When the queue is full", func() {
			deps.submitErr = service.ErrBackpressure
			w := do(h, http.MethodPost, "/v1/offers", offer)
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("When the service is stopped", func() {
			deps.submitErr = service.ErrStopped
			w := do(h, http.MethodPost, "/v1/offers", offer)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When required fields are missing", func() {
			w := do(h, http.MethodPost, "/v1/offers", `{"player":{"player_id":"qb-1"}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(deps.submitted, ShouldBeEmpty)
		})
	})
}

func TestBoardAndRankHandlers(t *testing.T) {
	Convey("Given an API server with a populated board", t, func() {
		h := api.NewServer(&mockDeps{board: board()}, api.WithMaxBoardLimit(2)).Routes(context.Background())

		Convey("When the board is read with a limit", func() {
			w := do(h, http.MethodGet, "/v1/board?limit=2", "")
			var entries []api.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].PlayerID, ShouldEqual, "qb-1")
		})

		Convey("When the limit is invalid or too large", func() {
			So(do(h, http.MethodGet, "/v1/board?limit=abc", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodGet, "/v1/board?limit=0", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(h, http.MethodGet, "/v1/board?limit=3", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a known player's rank is read", func() {
			w := do(h, http.MethodGet, "/v1/rank/wr-1", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"rank":2`)
		})

		Convey("When an unknown player's rank is read", func() {
			So(do(h, http.MethodGet, "/v1/rank/nobody", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestContractsHandler(t *testing.T) {
	Convey("Given an API server", t, func() {
		h := api.NewServer(&mockDeps{}).Routes(context.Background())

		Convey("When a structure beyond the owner's limits is checked", func() {
			w := do(h, http.MethodPost, "/v1/contracts/validate",
				`{"years":6,"guaranteed_pct":0.7,"owner":{"max_contract_years":4,"max_guaranteed_pct":0.5}}`)

			Convey("Then violations are reported with 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var report pressure.ConstraintReport
				So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
				So(report.IsValid, ShouldBeFalse)
				So(report.Violations, ShouldHaveLength, 2)
			})
		})

		Convey("When years are missing", func() {
			w := do(h, http.MethodPost, "/v1/contracts/validate", `{"guaranteed_pct":0.5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When directives are invalid", func() {
			w := do(h, http.MethodPost, "/v1/contracts/validate", `{"years":3,"guaranteed_pct":0.5,"owner":{"team_philosophy":"tank"}}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a server limited to one request per second with no burst", t, func() {
		h := api.NewServer(&mockDeps{board: board()}, api.WithRateLimit(1, 1)).Routes(context.Background())

		Convey("Then the second immediate request is rejected", func() {
			So(do(h, http.MethodGet, "/v1/board", "").Code, ShouldEqual, http.StatusOK)
			w := do(h, http.MethodGet, "/v1/board", "")
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(w.Header().Get("Retry-After"), ShouldNotBeEmpty)
		})

		Convey("And unversioned routes are not limited", func() {
			for i := 0; i < 5; i++ {
				So(do(h, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}

func forwardedFrom(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/v1/board", http.NoBody)
	req.Header.Set("X-Forwarded-For", addr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitForwardedFor(t *testing.T) {
	Convey("Given a limited server that does not trust a proxy", t, func() {
		h := api.NewServer(&mockDeps{board: board()}, api.WithRateLimit(1, 1)).Routes(context.Background())

		Convey("Then a spoofed X-Forwarded-For does not earn a fresh bucket", func() {
			So(forwardedFrom(h, "203.0.113.1"), ShouldEqual, http.StatusOK)
			So(forwardedFrom(h, "203.0.113.2"), ShouldEqual, http.StatusTooManyRequests)
		})
	})

	Convey("Given a limited server behind a trusted proxy", t, func() {
		h := api.NewServer(&mockDeps{board: board()},
			api.WithRateLimit(1, 1),
			api.WithTrustedProxy(true),
		).Routes(context.Background())

		Convey("Then forwarded clients are limited separately", func() {
			So(forwardedFrom(h, "203.0.113.1"), ShouldEqual, http.StatusOK)
			So(forwardedFrom(h, "203.0.113.2"), ShouldEqual, http.StatusOK)
			So(forwardedFrom(h, "203.0.113.1"), ShouldEqual, http.StatusTooManyRequests)
		})
	})
}

func TestMaxBodyBytes(t *testing.T) {
	Convey("Given a server accepting bodies up to 256 bytes", t, func() {
		h := api.NewServer(&mockDeps{}, api.WithMaxBodyBytes(256)).Routes(context.Background())

		Convey("When an oversized offer is posted", func() {
			body := `{"team_id":"team-1","player":{"player_id":"` + strings.Repeat("x", 1024) + `"}}`
			w := do(h, http.MethodPost, "/v1/offers", body)

			Convey("Then it is rejected as too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(w.Body.String(), ShouldContainSubstring, "too_large")
			})
		})

		Convey("When a small evaluation is posted", func() {
			w := do(h, http.MethodPost, "/v1/evaluate", `{"player":{"player_id":"qb-1","position":"QB","overall_rating":90}}`)

			Convey("Then it is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestServerWithService(t *testing.T) {
	Convey("Given an API server over a running service", t, func() {
		svc := service.New(
			service.WithValuationContext(valuation.NewContext(2025)),
			service.WithWorkerCount(2),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		h := api.NewServer(svc).Routes(ctx)

		Convey("When two teams bid for the same player", func() {
			for i, rating := range []int{78, 91} {
				body := fmt.Sprintf(`{"request_id":"r%d","team_id":"t%d","player":{"player_id":"edge-1","position":"EDGE","age":26,"overall_rating":%d}}`, i, i, rating)
				So(do(h, http.MethodPost, "/v1/offers", body).Code, ShouldEqual, http.StatusAccepted)
			}

			Convey("Then the rank endpoint shows the better offer", func() {
				deadline := time.Now().Add(5 * time.Second)
				var entry api.Entry
				for time.Now().Before(deadline) {
					w := do(h, http.MethodGet, "/v1/rank/edge-1", "")
					if w.Code == http.StatusOK {
						_ = json.Unmarshal(w.Body.Bytes(), &entry)
						if entry.TeamID == "t1" {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
				}
				So(entry.TeamID, ShouldEqual, "t1")
				So(entry.Rank, ShouldEqual, 1)
			})
		})
	})
}
