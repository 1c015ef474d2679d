package valuation

import "math"

// Tier is a coarse quality bracket used as the first lookup into a rate table.
type Tier string

// Tiers, lowest to highest.
const (
	TierBackup  Tier = "backup"
	TierStarter Tier = "starter"
	TierQuality Tier = "quality"
	TierElite   Tier = "elite"
)

// Within-tier multiplier bounds.
const (
	scaleBottom = 0.90
	scaleTop    = 1.15
)

type tierRange struct {
	min, max float64
}

// Ratings below the backup minimum clamp to the bottom of the backup range.
var tierRanges = map[Tier]tierRange{ //nolint:gochecknoglobals // fixed table
	TierElite:   {min: 90, max: 99},
	TierQuality: {min: 80, max: 89},
	TierStarter: {min: 70, max: 79},
	TierBackup:  {min: 40, max: 69},
}

// Tiers lists every tier from lowest to highest.
func Tiers() []Tier {
	return []Tier{TierBackup, TierStarter, TierQuality, TierElite}
}

// TierFor buckets a (possibly fractional) rating.
func TierFor(rating float64) Tier {
	switch r := math.Floor(rating); {
	case r >= tierRanges[TierElite].min:
		return TierElite
	case r >= tierRanges[TierQuality].min:
		return TierQuality
	case r >= tierRanges[TierStarter].min:
		return TierStarter
	default:
		return TierBackup
	}
}

// Next returns the tier above t. Elite has none.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierBackup:
		return TierStarter, true
	case TierStarter:
		return TierQuality, true
	case TierQuality:
		return TierElite, true
	default:
		return "", false
	}
}

// WithinTierScale maps a rating's position inside its tier range linearly to
// [0.90, 1.15].
func WithinTierScale(rating float64) float64 {
	rg := tierRanges[TierFor(rating)]
	frac := clamp((rating-rg.min)/(rg.max-rg.min), 0, 1)
	return scaleBottom + (scaleTop-scaleBottom)*frac
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
