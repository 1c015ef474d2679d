package repository

import "time"

// Option applies a configuration option to the OfferBoard.
type Option func(*OfferBoard)

// WithClock sets the clock used to stamp offers recorded without a time.
func WithClock(now func() time.Time) Option {
	return func(b *OfferBoard) {
		if now != nil {
			b.now = now
		}
	}
}
