// Package valuation turns a player record into a baseline AAV. Five
// independent factors each produce a FactorResult and the Aggregator blends
// them by confidence.
package valuation

import (
	"maps"
	"strings"

	"github.com/okian/aav/internal/domain/player"
)

// TierRates holds one value per tier.
type TierRates map[Tier]float64

// AgeRange is an inclusive peak window.
type AgeRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Shift moves the window by delta years.
func (r AgeRange) Shift(delta int) AgeRange {
	return AgeRange{Start: r.Start + delta, End: r.End + delta}
}

// Benchmark is one stat's league distribution.
type Benchmark struct {
	Stat        string
	Breakpoints [7]float64
	// PerGame marks counting stats that are divided by games played.
	PerGame  bool
	Inverted bool
	Required bool
}

// benchmarkPercentiles are the percentiles that Breakpoints map to.
var benchmarkPercentiles = [7]float64{0, 10, 25, 50, 75, 90, 100} //nolint:gochecknoglobals // fixed table

// Context is the season-scoped, read-only input to every factor. Build it once
// with NewContext and share it across goroutines; nothing mutates it after
// construction.
type Context struct {
	season         int
	salaryCap      float64
	thresholds     player.Thresholds
	capPct         TierRates
	ratingRates    map[string]TierRates
	marketRates    map[string]TierRates
	marketHeat     map[string]float64
	groups         map[string]string
	peakAges       map[string]AgeRange
	archetypePeaks map[string]map[string]AgeRange
	benchmarks     map[string][]Benchmark
	keyAttributes  map[string]map[string]float64
	archetypeAttrs map[string]map[string]map[string]float64
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithSalaryCap overrides the league salary cap.
func WithSalaryCap(capAmount float64) ContextOption {
	return func(c *Context) {
		if capAmount > 0 {
			c.salaryCap = capAmount
		}
	}
}

// WithThresholds overrides the young/veteran age cut-offs.
func WithThresholds(t player.Thresholds) ContextOption {
	return func(c *Context) {
		if t.Young > 0 && t.Veteran > t.Young {
			c.thresholds = t
		}
	}
}

// WithMarketRates merges per-group market rates over the defaults.
func WithMarketRates(groupRates map[string]TierRates) ContextOption {
	return func(c *Context) {
		mergeRates(c.marketRates, groupRates)
	}
}

// WithRatingRates merges per-position rating rates over the defaults.
func WithRatingRates(positionRates map[string]TierRates) ContextOption {
	return func(c *Context) {
		mergeRates(c.ratingRates, positionRates)
	}
}

// WithMarketHeat merges per-group heat multipliers over the defaults.
func WithMarketHeat(heat map[string]float64) ContextOption {
	return func(c *Context) {
		for group, h := range heat {
			if h > 0 {
				c.marketHeat[strings.ToUpper(group)] = h
			}
		}
	}
}

// WithBenchmarks replaces the benchmark set for the given groups or positions.
func WithBenchmarks(b map[string][]Benchmark) ContextOption {
	return func(c *Context) {
		for key, set := range b {
			c.benchmarks[strings.ToUpper(key)] = append([]Benchmark(nil), set...)
		}
	}
}

func mergeRates(dst, src map[string]TierRates) {
	for key, tiers := range src {
		key = strings.ToUpper(key)
		merged := TierRates{}
		maps.Copy(merged, dst[key])
		for tier, v := range tiers {
			if v > 0 {
				merged[tier] = v
			}
		}
		dst[key] = merged
	}
}

// NewContext builds a Context for season from the default league tables.
func NewContext(season int, opts ...ContextOption) *Context {
	c := &Context{
		season:         season,
		salaryCap:      DefaultSalaryCap,
		thresholds:     player.DefaultThresholds(),
		capPct:         defaultCapPct(),
		ratingRates:    defaultRatingRates(),
		marketRates:    defaultMarketRates(),
		marketHeat:     defaultMarketHeat(),
		groups:         defaultPositionGroups(),
		peakAges:       defaultPeakAges(),
		archetypePeaks: defaultArchetypePeaks(),
		benchmarks:     defaultBenchmarks(),
		keyAttributes:  defaultKeyAttributes(),
		archetypeAttrs: defaultArchetypeAttributes(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Season returns the season year ages are measured against.
func (c *Context) Season() int { return c.season }

// SalaryCap returns the league cap.
func (c *Context) SalaryCap() float64 { return c.salaryCap }

// Thresholds returns the young/veteran age cut-offs.
func (c *Context) Thresholds() player.Thresholds { return c.thresholds }

// Group maps a position to its coarse market group.
func (c *Context) Group(position string) (string, bool) {
	g, ok := c.groups[strings.ToUpper(position)]
	return g, ok
}

// RatingRate returns the rating table entry for position and tier.
func (c *Context) RatingRate(position string, tier Tier) (float64, bool) {
	v, ok := c.ratingRates[strings.ToUpper(position)][tier]
	return v, ok && v > 0
}

// MarketRate returns the market table entry for group and tier.
func (c *Context) MarketRate(group string, tier Tier) (float64, bool) {
	v, ok := c.marketRates[group][tier]
	return v, ok && v > 0
}

// Heat returns the market heat multiplier for group, defaulting to 1.
func (c *Context) Heat(group string) float64 {
	if h, ok := c.marketHeat[group]; ok {
		return h
	}
	return 1
}

// CapBaseline is the cap-percentage fallback value for a tier.
func (c *Context) CapBaseline(tier Tier) float64 {
	return c.salaryCap * c.capPct[tier]
}

// TierValue prices a rating for position using the rating table, falling back
// to the cap-percentage baseline when the position is unknown.
func (c *Context) TierValue(position string, rating float64) (value float64, tier Tier, fallback bool) {
	tier = TierFor(rating)
	base, ok := c.RatingRate(position, tier)
	if !ok {
		base, fallback = c.CapBaseline(tier), true
	}
	return base * WithinTierScale(rating), tier, fallback
}

// BaseRate is the unscaled rate for position and tier, with the cap fallback.
func (c *Context) BaseRate(position string, tier Tier) float64 {
	if v, ok := c.RatingRate(position, tier); ok {
		return v
	}
	return c.CapBaseline(tier)
}

// PeakRange resolves the peak window. An archetype known for the position's
// group wins over the position default.
func (c *Context) PeakRange(position, archetype string) (rg AgeRange, fromArchetype, ok bool) {
	position = strings.ToUpper(position)
	if archetype != "" {
		if group, found := c.groups[position]; found {
			if r, hit := c.archetypePeaks[group][strings.ToLower(strings.TrimSpace(archetype))]; hit {
				return r, true, true
			}
		}
	}
	rg, ok = c.peakAges[position]
	return rg, false, ok
}

// Benchmarks returns the stat distributions for a position, trying the
// position itself before its group.
func (c *Context) Benchmarks(position string) []Benchmark {
	position = strings.ToUpper(position)
	if b, ok := c.benchmarks[position]; ok {
		return b
	}
	if group, ok := c.groups[position]; ok {
		return c.benchmarks[group]
	}
	return nil
}

// KeyAttributes returns the weighted scouting attributes for a position,
// preferring an archetype-specific set when one exists.
func (c *Context) KeyAttributes(position, archetype string) (weights map[string]float64, fromArchetype bool) {
	group, ok := c.Group(position)
	if !ok {
		return nil, false
	}
	if archetype != "" {
		if w, hit := c.archetypeAttrs[group][strings.ToLower(strings.TrimSpace(archetype))]; hit {
			return w, true
		}
	}
	return c.keyAttributes[group], false
}
