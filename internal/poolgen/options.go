package poolgen

import "strings"

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the random stream. Equal seeds produce equal pools.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithPositions restricts generated players to the given position codes.
func WithPositions(positions ...string) Option {
	return func(g *Generator) {
		var out []string
		for _, p := range positions {
			if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			g.positions = out
		}
	}
}

// WithMissingDataRate sets the probability that a player comes without
// attributes, and independently without stats. Values are clamped to [0,1].
func WithMissingDataRate(rate float64) Option {
	return func(g *Generator) {
		g.missingRate = min(max(rate, 0), 1)
	}
}
