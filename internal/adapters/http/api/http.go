// Package api exposes the valuation service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"

	"github.com/okian/aav/internal/adapters/http/swagger"
	"github.com/okian/aav/internal/adapters/repository"
	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/pkg/logger"
	"github.com/okian/aav/pkg/metrics"
)

const (
	defaultMaxBoardLimit = 100
	defaultMaxPoolSize   = 500
	defaultMaxBodyBytes  = 1 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	EvaluateDependencies
	OfferDependencies
	BoardDependencies
	RankDependencies
	ContractDependencies
	StatsProvider
}

// Entry mirrors the read shape returned by board queries.
type Entry = repository.Entry

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMaxBoardLimit caps GET /v1/board?limit.
func WithMaxBoardLimit(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBoardLimit = n
		}
	}
}

// WithMaxPoolSize caps the number of players in one pool evaluation.
func WithMaxPoolSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxPoolSize = n
		}
	}
}

// WithRateLimit enables per-client rate limiting. A non-positive rate
// disables it.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		s.rateLimit = rps
		s.rateBurst = burst
	}
}

// WithTrustedProxy makes client addresses come from X-Forwarded-For and
// X-Real-IP. Enable it only behind a proxy that overwrites those headers.
func WithTrustedProxy(trust bool) ServerOption {
	return func(s *Server) {
		s.trustProxy = trust
	}
}

// WithMaxBodyBytes caps request bodies; larger ones answer 413.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins ...string) ServerOption {
	return func(s *Server) {
		s.corsOrigins = append([]string(nil), origins...)
	}
}

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	evaluateHandler  *EvaluateHandler
	offersHandler    *OffersHandler
	boardHandler     *BoardHandler
	rankHandler      *RankHandler
	contractsHandler *ContractsHandler

	maxBoardLimit int
	maxPoolSize   int
	rateLimit     float64
	rateBurst     int
	trustProxy    bool
	maxBodyBytes  int64
	corsOrigins   []string
	logger        logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		maxBoardLimit: defaultMaxBoardLimit,
		maxPoolSize:   defaultMaxPoolSize,
		maxBodyBytes:  defaultMaxBodyBytes,
		corsOrigins:   []string{"*"},
		logger:        logger.GetOrNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.evaluateHandler = NewEvaluateHandler(deps, s.maxPoolSize)
	s.offersHandler = NewOffersHandler(deps)
	s.boardHandler = NewBoardHandler(deps, s.maxBoardLimit)
	s.rankHandler = NewRankHandler(deps)
	s.contractsHandler = NewContractsHandler(deps)
	return s
}

// Routes builds the router with the middleware stack and every route.
func (s *Server) Routes(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestSize(s.maxBodyBytes))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}).Handler)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	r.Get("/stats", s.statsHandler.HandleStats)
	swagger.Register(ctx, r)

	r.Route("/v1", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(RateLimitMiddleware(s.rateLimit, s.rateBurst))
		}
		r.Post("/evaluate", s.evaluateHandler.HandleEvaluate)
		r.Post("/evaluate/pool", s.evaluateHandler.HandleEvaluatePool)
		r.Post("/offers", s.offersHandler.HandlePostOffer)
		r.Get("/board", s.boardHandler.HandleGetBoard)
		r.Get("/rank/{playerID}", s.rankHandler.HandleGetRank)
		r.Post("/contracts/validate", s.contractsHandler.HandleValidate)
	})
	s.logger.Debug(ctx, "api routes registered",
		logger.Bool("rate_limited", s.rateLimit > 0),
		logger.Bool("trust_proxy", s.trustProxy),
		logger.Int("max_board_limit", s.maxBoardLimit),
	)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service and domain sentinels onto status codes. An
// oversized body is checked first since it is also wrapped as a bad request.
func writeServiceError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, player.ErrValidation),
		errors.Is(err, owner.ErrInvalidDirective),
		errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, service.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

var _ Dependencies = (*service.Service)(nil)
