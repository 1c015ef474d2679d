package valuation

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/aav/internal/domain/player"
)

// PotentialAttribute is the attribute key carrying a player's ceiling grade.
const PotentialAttribute = "potential"

const (
	scoutingConfidence         = 0.80
	scoutingMissingPenalty     = 0.05
	scoutingConfidenceFloor    = 0.50
	scoutingFallbackConfidence = 0.55
	scoutingEmptyConfidence    = 0.35
	scoutingAgePenalty         = 0.10

	veteranPotentialHeadroom = 3.0
)

// scoutingWeights blends current grade, overall rating and potential.
type scoutingWeights struct {
	current, overall, potential float64
}

var scoutingBlend = map[player.AgeCategory]scoutingWeights{ //nolint:gochecknoglobals // fixed table
	player.AgeYoung:   {current: 0.35, overall: 0.35, potential: 0.30},
	player.AgePrime:   {current: 0.40, overall: 0.40, potential: 0.20},
	player.AgeVeteran: {current: 0.45, overall: 0.45, potential: 0.10},
}

// ScoutingFactor prices the scouting department's composite grade.
type ScoutingFactor struct{}

// Name implements Factor.
func (ScoutingFactor) Name() string { return FactorScouting }

// Calculate implements Factor.
func (ScoutingFactor) Calculate(p *player.Data, vc *Context) (FactorResult, error) {
	if err := prepare(p, vc); err != nil {
		return FactorResult{}, err
	}
	pos := p.NormalizedPosition()
	overall := float64(p.Rating())
	breakdown := map[string]any{"position": pos}

	weights, fromArchetype := vc.KeyAttributes(pos, p.Archetype)
	current, present, missing := gradeKeyAttributes(p.Attributes, weights)

	var confidence float64
	switch {
	case len(p.Attributes) == 0:
		current = overall
		confidence = scoutingEmptyConfidence
		breakdown[FlagNoAttributes] = true
	case present == 0:
		current = overall
		confidence = scoutingFallbackConfidence
		breakdown[FlagFallbackUsed] = true
	default:
		confidence = math.Max(scoutingConfidenceFloor,
			scoutingConfidence-scoutingMissingPenalty*float64(len(missing)))
	}
	if len(missing) > 0 && present > 0 {
		breakdown["missing_attributes"] = missing
	}
	breakdown["archetype_override"] = fromArchetype

	potential := current
	if v, ok := p.Attributes[PotentialAttribute]; ok {
		potential = clamp(float64(v), player.MinRating, player.MaxRating)
	}

	category := player.AgePrime
	if age, ok := p.ResolveAge(vc.Season()); ok {
		category = vc.Thresholds().Category(age)
		breakdown["age"] = age
	} else {
		confidence -= scoutingAgePenalty
		breakdown[FlagAgeUnknown] = true
	}

	w := scoutingBlend[category]
	upside := potential
	if category == player.AgeVeteran {
		upside = math.Min(potential, current+veteranPotentialHeadroom)
	}
	composite := w.current*current + w.overall*overall + w.potential*upside

	value, tier, fallback := vc.TierValue(pos, composite)
	if fallback {
		breakdown["cap_percentage_pricing"] = true
	}
	breakdown["current_grade"] = current
	breakdown["potential"] = potential
	breakdown["age_category"] = string(category)
	breakdown["composite_grade"] = composite
	breakdown["tier"] = string(tier)

	return newResult(FactorScouting, value, confidence, breakdown,
		fmt.Sprintf("%s composite grade %.1f (current %.1f, potential %.0f)", category, composite, current, potential)), nil
}

// gradeKeyAttributes returns the weighted mean of the key attributes present
// in attrs, along with how many were present and which were missing.
func gradeKeyAttributes(attrs map[string]int, weights map[string]float64) (grade float64, present int, missing []string) {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]float64, 0, len(keys))
	ws := make([]float64, 0, len(keys))
	for _, k := range keys {
		v, ok := attrs[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		values = append(values, clamp(float64(v), player.MinRating, player.MaxRating))
		ws = append(ws, weights[k])
	}
	if len(values) == 0 {
		return 0, 0, missing
	}
	return stat.Mean(values, ws), len(values), missing
}
