// Package pressure adjusts a baseline AAV for organizational pressure. Each
// Modifier is one stage; ApplyChain folds an ordered list of them and keeps
// an audit trail of every step.
package pressure

import (
	"math"

	"github.com/okian/aav/internal/domain/owner"
)

// Modifier names.
const (
	NameJobSecurity  = "job_security"
	NameWinNow       = "win_now"
	NameBudgetStance = "budget_stance"
)

// Modifier is one stage of the owner-pressure chain. Implementations are
// stateless and must not mutate the owner context.
type Modifier interface {
	Name() string
	Apply(aav float64, oc *owner.Context, age *int) (float64, string)
	PressureLevel(oc *owner.Context, age *int) float64
	Breakdown(aav float64, oc *owner.Context, age *int) map[string]any
}

// StepResult records one modifier's effect.
type StepResult struct {
	ModifierName  string         `json:"modifier_name"`
	InputAAV      float64        `json:"input_aav"`
	OutputAAV     float64        `json:"output_aav"`
	AdjustmentPct float64        `json:"adjustment_pct"`
	PressureLevel float64        `json:"pressure_level"`
	Description   string         `json:"description"`
	Breakdown     map[string]any `json:"breakdown,omitempty"`
}

// DefaultChain returns the standard job security, win-now, budget order.
func DefaultChain(opts ...Option) []Modifier {
	return []Modifier{
		NewJobSecurityModifier(opts...),
		NewWinNowModifier(opts...),
		NewBudgetStanceModifier(),
	}
}

// ApplyChain folds modifiers left to right. Each step's input is the previous
// step's output. An empty list returns base unchanged with no steps.
func ApplyChain(base float64, oc *owner.Context, modifiers []Modifier, age *int) (final, totalPct float64, steps []StepResult) {
	steps = make([]StepResult, 0, len(modifiers))
	current := base
	for _, m := range modifiers {
		out, desc := m.Apply(current, oc, age)
		steps = append(steps, StepResult{
			ModifierName:  m.Name(),
			InputAAV:      current,
			OutputAAV:     out,
			AdjustmentPct: relative(current, out),
			PressureLevel: m.PressureLevel(oc, age),
			Description:   desc,
			Breakdown:     m.Breakdown(current, oc, age),
		})
		current = out
	}
	return current, relative(base, current), steps
}

func relative(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from
}

func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
