package pressure

import (
	"fmt"

	"github.com/okian/aav/internal/domain/owner"
)

var budgetMultipliers = map[owner.Philosophy]float64{ //nolint:gochecknoglobals // fixed table
	owner.Aggressive:   1.15,
	owner.Balanced:     1.00,
	owner.Conservative: 0.90,
}

var budgetPressure = map[owner.Philosophy]float64{ //nolint:gochecknoglobals // fixed table
	owner.Aggressive:   0.8,
	owner.Balanced:     0.5,
	owner.Conservative: 0.2,
}

// ConstraintReport describes how a proposed contract fits the owner's limits.
// Violations are reported, never corrected.
type ConstraintReport struct {
	YearsValid      bool     `json:"years_valid"`
	GuaranteedValid bool     `json:"guaranteed_valid"`
	Violations      []string `json:"violations"`
	IsValid         bool     `json:"is_valid"`
}

// BudgetStanceModifier scales value by the owner's spending philosophy and
// owns the contract structure limits.
type BudgetStanceModifier struct{}

// NewBudgetStanceModifier builds the stage.
func NewBudgetStanceModifier() *BudgetStanceModifier { return &BudgetStanceModifier{} }

// Name implements Modifier.
func (m *BudgetStanceModifier) Name() string { return NameBudgetStance }

// Multiplier returns the philosophy's scale, 1 when unknown.
func (m *BudgetStanceModifier) Multiplier(oc *owner.Context) float64 {
	if oc == nil {
		return 1
	}
	if v, ok := budgetMultipliers[oc.OwnerPhilosophy]; ok {
		return v
	}
	return 1
}

// PressureLevel implements Modifier.
func (m *BudgetStanceModifier) PressureLevel(oc *owner.Context, _ *int) float64 {
	if oc == nil {
		return 0
	}
	return budgetPressure[oc.OwnerPhilosophy]
}

// Apply implements Modifier.
func (m *BudgetStanceModifier) Apply(aav float64, oc *owner.Context, _ *int) (float64, string) {
	if oc == nil {
		return aav, "no owner context; budget stance not applied"
	}
	mult := m.Multiplier(oc)
	return aav * mult, fmt.Sprintf("%s owner scales by %.2fx", oc.OwnerPhilosophy, mult)
}

// Breakdown implements Modifier.
func (m *BudgetStanceModifier) Breakdown(_ float64, oc *owner.Context, _ *int) map[string]any {
	if oc == nil {
		return map[string]any{"applied": false}
	}
	return map[string]any{
		"owner_philosophy":   string(oc.OwnerPhilosophy),
		"multiplier":         m.Multiplier(oc),
		"max_years":          m.MaxYears(oc),
		"max_guaranteed_pct": m.MaxGuaranteedPct(oc),
	}
}

// MaxYears is the longest contract the owner allows.
func (m *BudgetStanceModifier) MaxYears(oc *owner.Context) int {
	if oc == nil || oc.MaxContractYears <= 0 {
		return owner.DefaultMaxContractYears
	}
	return oc.MaxContractYears
}

// MaxGuaranteedPct is the largest guaranteed share the owner allows.
func (m *BudgetStanceModifier) MaxGuaranteedPct(oc *owner.Context) float64 {
	if oc == nil || oc.MaxGuaranteedPct <= 0 {
		return owner.DefaultMaxGuaranteedPct
	}
	return oc.MaxGuaranteedPct
}

// ValidateConstraints checks a proposed structure against the owner's limits.
func (m *BudgetStanceModifier) ValidateConstraints(years int, guaranteedPct float64, oc *owner.Context) ConstraintReport {
	maxYears, maxPct := m.MaxYears(oc), m.MaxGuaranteedPct(oc)
	r := ConstraintReport{YearsValid: true, GuaranteedValid: true, Violations: []string{}}

	switch {
	case years < 1:
		r.YearsValid = false
		r.Violations = append(r.Violations, fmt.Sprintf("contract must run at least 1 year, proposed %d", years))
	case years > maxYears:
		r.YearsValid = false
		r.Violations = append(r.Violations, fmt.Sprintf("proposed %d years exceeds owner max of %d", years, maxYears))
	}
	switch {
	case guaranteedPct < 0:
		r.GuaranteedValid = false
		r.Violations = append(r.Violations, fmt.Sprintf("guaranteed share %.0f%% is negative", guaranteedPct*100))
	case guaranteedPct > maxPct:
		r.GuaranteedValid = false
		r.Violations = append(r.Violations,
			fmt.Sprintf("proposed %.0f%% guaranteed exceeds owner max of %.0f%%", guaranteedPct*100, maxPct*100))
	}
	r.IsValid = r.YearsValid && r.GuaranteedValid
	return r
}
