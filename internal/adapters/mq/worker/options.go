package worker

import (
	"github.com/okian/aav/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName names the worker in logs.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
			w.logger = w.logger.With(logger.String("worker", name))
		}
	}
}

// WithLogger replaces the worker logger.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}
