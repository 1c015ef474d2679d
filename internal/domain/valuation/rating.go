package valuation

import (
	"fmt"

	"github.com/okian/aav/internal/domain/player"
)

const (
	ratingConfidence         = 0.85
	ratingFallbackConfidence = 0.80
)

// RatingFactor prices overall rating through the position's tier table.
type RatingFactor struct{}

// Name implements Factor.
func (RatingFactor) Name() string { return FactorRating }

// Calculate implements Factor.
func (RatingFactor) Calculate(p *player.Data, vc *Context) (FactorResult, error) {
	if err := prepare(p, vc); err != nil {
		return FactorResult{}, err
	}
	pos := p.NormalizedPosition()
	rating := float64(p.Rating())
	value, tier, fallback := vc.TierValue(pos, rating)

	confidence := ratingConfidence
	breakdown := map[string]any{
		"position": pos,
		"rating":   p.Rating(),
		"tier":     string(tier),
		"scale":    WithinTierScale(rating),
	}
	rationale := fmt.Sprintf("%s rated %d is %s tier, scaled %.3fx",
		pos, p.Rating(), tier, WithinTierScale(rating))
	if fallback {
		confidence = ratingFallbackConfidence
		breakdown[FlagFallbackUsed] = true
		rationale += "; unknown position priced from cap percentage"
	}
	return newResult(FactorRating, value, confidence, breakdown, rationale), nil
}
