package valuation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/aav/internal/domain/player"
)

const (
	statsBaseConfidence     = 0.70
	statsVolumeConfidence   = 0.16
	statsMissingPenalty     = 0.05
	statsFallbackConfidence = 0.40
	fullSeasonGames         = 16

	statsFloorFactor  = 0.90
	statsEliteCeiling = 1.15
	maxPercentile     = 100.0

	tailDecay    = 3.0
	minTailWidth = 1e-6
)

// StatsFactor prices season production against league percentiles.
type StatsFactor struct{}

// Name implements Factor.
func (StatsFactor) Name() string { return FactorStats }

// Percentile places v on the benchmark's distribution. Between p10 and p90
// it interpolates linearly; the outer bands decay exponentially toward 0 and
// 100 so the mapping stays strictly increasing past the last breakpoint.
// Inverted stats are flipped so fewer is better.
func (b Benchmark) Percentile(v float64) float64 {
	bp := b.Breakpoints
	last := len(bp) - 1
	var p float64
	switch {
	case v < bp[1]:
		p = benchmarkPercentiles[1] * math.Exp(-(bp[1]-v)/tailScale(bp[1]-bp[0]))
	case v > bp[last-1]:
		band := maxPercentile - benchmarkPercentiles[last-1]
		p = maxPercentile - band*math.Exp(-(v-bp[last-1])/tailScale(bp[last]-bp[last-1]))
	default:
		for i := 2; i < last; i++ {
			if v > bp[i] {
				continue
			}
			lo, hi := bp[i-1], bp[i]
			plo, phi := benchmarkPercentiles[i-1], benchmarkPercentiles[i]
			if hi == lo {
				p = phi
			} else {
				p = plo + (phi-plo)*(v-lo)/(hi-lo)
			}
			break
		}
	}
	if b.Inverted {
		return maxPercentile - p
	}
	return p
}

// tailScale spreads an outer band so its breakpoint lands tailDecay
// e-foldings in, about 95% of the way to the limit.
func tailScale(width float64) float64 {
	if width <= 0 {
		width = minTailWidth
	}
	return width / tailDecay
}

// Calculate implements Factor.
func (StatsFactor) Calculate(p *player.Data, vc *Context) (FactorResult, error) {
	if err := prepare(p, vc); err != nil {
		return FactorResult{}, err
	}
	pos := p.NormalizedPosition()
	tier := TierFor(float64(p.Rating()))
	rate := vc.BaseRate(pos, tier)
	breakdown := map[string]any{
		"position":     pos,
		"tier":         string(tier),
		"games_played": p.GamesPlayed,
	}

	benchmarks := vc.Benchmarks(pos)
	if p.GamesPlayed == 0 || len(p.Stats) == 0 || len(benchmarks) == 0 {
		breakdown[FlagNoStats] = true
		return newResult(FactorStats, rate, statsFallbackConfidence, breakdown,
			fmt.Sprintf("no usable production; %s-tier rate carried", tier)), nil
	}

	percentiles := make(map[string]float64, len(benchmarks))
	values := make([]float64, 0, len(benchmarks))
	var missing []string
	for _, b := range benchmarks {
		raw, ok := p.Stats[b.Stat]
		if !ok {
			if b.Required {
				missing = append(missing, b.Stat)
			}
			continue
		}
		if b.PerGame {
			raw /= float64(p.GamesPlayed)
		}
		pct := b.Percentile(raw)
		percentiles[b.Stat] = pct
		values = append(values, pct)
	}
	if len(missing) > 0 {
		breakdown[FlagMissingStats] = missing
	}
	if len(values) == 0 {
		breakdown[FlagNoStats] = true
		return newResult(FactorStats, rate, statsFallbackConfidence, breakdown,
			"no benchmarked stats supplied; tier rate carried"), nil
	}

	composite := stat.Mean(values, nil)
	floor := rate * statsFloorFactor
	ceiling := rate * statsEliteCeiling
	if next, ok := tier.Next(); ok {
		ceiling = vc.BaseRate(pos, next) * statsFloorFactor
	}
	value := floor + (ceiling-floor)*composite/maxPercentile

	volume := math.Min(float64(p.GamesPlayed)/fullSeasonGames, 1)
	confidence := statsBaseConfidence + statsVolumeConfidence*volume - statsMissingPenalty*float64(len(missing))

	breakdown["percentiles"] = percentiles
	breakdown["composite_percentile"] = composite
	breakdown["floor"] = floor
	breakdown["ceiling"] = ceiling
	return newResult(FactorStats, value, confidence, breakdown,
		fmt.Sprintf("%.0fth composite percentile over %d games", math.Round(composite), p.GamesPlayed)), nil
}
