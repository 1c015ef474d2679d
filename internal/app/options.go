package service

import (
	"github.com/okian/aav/internal/domain/engine"
	"github.com/okian/aav/internal/domain/valuation"
	"github.com/okian/aav/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of offer workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued offers.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many offer request IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithPoolConcurrency bounds the goroutines used by EvaluatePool.
func WithPoolConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.poolConcurrency = n
		}
	}
}

// WithValuationContext sets the league context every valuation runs against.
func WithValuationContext(vc *valuation.Context) Option {
	return func(s *Service) {
		if vc != nil {
			s.vc = vc
		}
	}
}

// WithEngineOptions passes options through to the valuation engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
