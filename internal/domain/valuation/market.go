package valuation

import (
	"fmt"

	"github.com/okian/aav/internal/domain/player"
)

const (
	marketConfidence         = 0.90
	marketFallbackConfidence = 0.80
	contractYearBoost        = 1.05
)

// MarketFactor prices a player against the position group's open market.
type MarketFactor struct{}

// Name implements Factor.
func (MarketFactor) Name() string { return FactorMarket }

// Calculate implements Factor.
func (MarketFactor) Calculate(p *player.Data, vc *Context) (FactorResult, error) {
	if err := prepare(p, vc); err != nil {
		return FactorResult{}, err
	}
	pos := p.NormalizedPosition()
	rating := float64(p.Rating())
	tier := TierFor(rating)
	scale := WithinTierScale(rating)

	boost := 1.0
	if p.ContractYear {
		boost = contractYearBoost
	}

	breakdown := map[string]any{
		"position":      pos,
		"tier":          string(tier),
		"scale":         scale,
		"contract_year": p.ContractYear,
	}

	group, mapped := vc.Group(pos)
	base, ok := vc.MarketRate(group, tier)
	if !mapped || !ok {
		value := vc.CapBaseline(tier) * boost * scale
		breakdown[FlagFallbackUsed] = true
		return newResult(FactorMarket, value, marketFallbackConfidence, breakdown,
			fmt.Sprintf("%s has no market group; priced from %s-tier cap percentage", pos, tier)), nil
	}

	heat := vc.Heat(group)
	breakdown["group"] = group
	breakdown["heat"] = heat
	breakdown["base_rate"] = base
	value := base * heat * boost * scale
	rationale := fmt.Sprintf("%s %s market at %.2fx heat", tier, group, heat)
	if p.ContractYear {
		rationale += ", contract-year bump"
	}
	return newResult(FactorMarket, value, marketConfidence, breakdown, rationale), nil
}
