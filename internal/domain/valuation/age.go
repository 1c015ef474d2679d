package valuation

import (
	"fmt"
	"math"

	"github.com/okian/aav/internal/domain/player"
)

const (
	ageConfidence          = 0.75
	ageArchetypeConfidence = 0.80
	ageUnknownConfidence   = 0.50
	ageNoPeakConfidence    = 0.60

	youthPremiumPerYear = 0.02
	declinePerYear      = 0.04
	maxAgeAdjustment    = 0.15
)

// AgeFactor adjusts the rating value by distance from the peak window.
type AgeFactor struct{}

// Name implements Factor.
func (AgeFactor) Name() string { return FactorAge }

// AgeModifier returns the relative adjustment for age against rg, bounded to
// [-0.15, 0.15].
func AgeModifier(age int, rg AgeRange) float64 {
	switch {
	case age < rg.Start:
		return math.Min(maxAgeAdjustment, youthPremiumPerYear*float64(rg.Start-age))
	case age > rg.End:
		return math.Max(-maxAgeAdjustment, -declinePerYear*float64(age-rg.End))
	default:
		return 0
	}
}

// Calculate implements Factor.
func (AgeFactor) Calculate(p *player.Data, vc *Context) (FactorResult, error) {
	if err := prepare(p, vc); err != nil {
		return FactorResult{}, err
	}
	pos := p.NormalizedPosition()
	base, _, _ := vc.TierValue(pos, float64(p.Rating()))
	breakdown := map[string]any{
		"position":    pos,
		"rating_base": base,
	}

	age, known := p.ResolveAge(vc.Season())
	if !known {
		breakdown[FlagAgeUnknown] = true
		breakdown["modifier"] = 0.0
		return newResult(FactorAge, base, ageUnknownConfidence, breakdown,
			"age unknown; rating value carried without adjustment"), nil
	}
	breakdown["age"] = age

	rg, fromArchetype, ok := vc.PeakRange(pos, p.Archetype)
	if !ok {
		breakdown[FlagFallbackUsed] = true
		breakdown["modifier"] = 0.0
		return newResult(FactorAge, base, ageNoPeakConfidence, breakdown,
			fmt.Sprintf("no peak window for %s; rating value carried", pos)), nil
	}
	switch p.DevelopmentCurve {
	case player.CurveEarly:
		rg = rg.Shift(-1)
	case player.CurveLate:
		rg = rg.Shift(1)
	}

	confidence := ageConfidence
	if fromArchetype {
		confidence = ageArchetypeConfidence
	}
	mod := AgeModifier(age, rg)
	breakdown["peak_start"] = rg.Start
	breakdown["peak_end"] = rg.End
	breakdown["archetype_override"] = fromArchetype
	breakdown["modifier"] = mod

	return newResult(FactorAge, base*(1+mod), confidence, breakdown, ageRationale(age, rg, mod)), nil
}

func ageRationale(age int, rg AgeRange, mod float64) string {
	switch {
	case mod > 0:
		return fmt.Sprintf("age %d is before the %d-%d peak: %+.0f%%", age, rg.Start, rg.End, mod*100)
	case mod < 0:
		return fmt.Sprintf("age %d is past the %d-%d peak: %+.0f%%", age, rg.Start, rg.End, mod*100)
	default:
		return fmt.Sprintf("age %d is inside the %d-%d peak", age, rg.Start, rg.End)
	}
}
