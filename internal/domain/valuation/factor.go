package valuation

import (
	"math"

	"github.com/okian/aav/internal/domain/player"
)

// Factor names.
const (
	FactorRating   = "rating"
	FactorMarket   = "market"
	FactorAge      = "age"
	FactorStats    = "stats"
	FactorScouting = "scouting"
)

// Breakdown flags shared by factors.
const (
	FlagFallbackUsed = "fallback_used"
	FlagAgeUnknown   = "age_unknown"
	FlagNoAttributes = "no_attributes"
	FlagNoStats      = "no_stats"
	FlagMissingStats = "missing_stats"
)

// FactorResult is one factor's opinion of a player's AAV.
type FactorResult struct {
	Name       string         `json:"name"`
	RawValue   float64        `json:"raw_value"`
	Confidence float64        `json:"confidence"`
	Breakdown  map[string]any `json:"breakdown"`
	Rationale  string         `json:"rationale"`
}

// Factor is a stateless valuation strategy.
type Factor interface {
	Name() string
	Calculate(p *player.Data, vc *Context) (FactorResult, error)
}

// DefaultFactors returns the five standard factors.
func DefaultFactors() []Factor {
	return []Factor{RatingFactor{}, MarketFactor{}, AgeFactor{}, StatsFactor{}, ScoutingFactor{}}
}

func newResult(name string, raw, confidence float64, breakdown map[string]any, rationale string) FactorResult {
	if math.IsNaN(raw) || raw < 0 {
		raw = 0
	}
	return FactorResult{
		Name:       name,
		RawValue:   raw,
		Confidence: clamp(confidence, 0, 1),
		Breakdown:  breakdown,
		Rationale:  rationale,
	}
}

// prepare validates the shared inputs every factor needs.
func prepare(p *player.Data, vc *Context) error {
	if p == nil {
		return &player.ValidationError{Field: "player", Reason: "is required"}
	}
	if vc == nil {
		return ErrNilContext
	}
	return p.Validate()
}
