// Package engine runs a player through the valuation factors, the aggregator
// and the owner-pressure chain to produce a contract recommendation.
package engine

import (
	"context"
	"fmt"

	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
	"github.com/okian/aav/internal/domain/pressure"
	"github.com/okian/aav/internal/domain/valuation"
	"github.com/okian/aav/pkg/logger"
)

// Recommendation is the engine's answer for one player and one team.
type Recommendation struct {
	PlayerID           string                   `json:"player_id,omitempty"`
	Position           string                   `json:"position"`
	Group              string                   `json:"group,omitempty"`
	Age                *int                     `json:"age,omitempty"`
	FinalAAV           float64                  `json:"final_aav"`
	BaseAAV            float64                  `json:"base_aav"`
	Confidence         float64                  `json:"confidence"`
	MaxYears           int                      `json:"max_years"`
	MaxGuaranteedPct   float64                  `json:"max_guaranteed_pct"`
	TotalAdjustmentPct float64                  `json:"total_adjustment_pct"`
	Factors            []valuation.FactorResult `json:"factor_breakdown"`
	Trail              []pressure.StepResult    `json:"modifier_trail"`
}

// Evaluator values a player for a team.
type Evaluator interface {
	// Evaluate is pure per call; ctx only carries logging scope.
	Evaluate(ctx context.Context, p player.Data, vc *valuation.Context, oc *owner.Context) (Recommendation, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithFactors replaces the default five factors.
func WithFactors(factors ...valuation.Factor) Option {
	return func(e *Engine) {
		if len(factors) > 0 {
			e.factors = append([]valuation.Factor(nil), factors...)
		}
	}
}

// WithModifiers pins the modifier chain. Without it the default chain is
// built per call using the valuation context's age thresholds.
func WithModifiers(modifiers ...pressure.Modifier) Option {
	return func(e *Engine) {
		e.modifiers = append([]pressure.Modifier(nil), modifiers...)
		e.fixedChain = true
	}
}

// WithMaxSecurityAdjustment caps the job-security premium of the default chain.
func WithMaxSecurityAdjustment(v float64) Option {
	return func(e *Engine) {
		e.chainOpts = append(e.chainOpts, pressure.WithMaxAdjustment(v))
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine is safe for concurrent use; it holds no per-call state.
type Engine struct {
	factors    []valuation.Factor
	aggregator valuation.Aggregator
	modifiers  []pressure.Modifier
	fixedChain bool
	chainOpts  []pressure.Option
	budget     *pressure.BudgetStanceModifier
	log        logger.Logger
}

// New creates an engine with the five standard factors and the default chain.
func New(opts ...Option) *Engine {
	e := &Engine{
		factors: valuation.DefaultFactors(),
		budget:  pressure.NewBudgetStanceModifier(),
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate implements Evaluator.
func (e *Engine) Evaluate(ctx context.Context, p player.Data, vc *valuation.Context, oc *owner.Context) (Recommendation, error) {
	if err := p.Validate(); err != nil {
		return Recommendation{}, err
	}
	if vc == nil {
		return Recommendation{}, valuation.ErrNilContext
	}
	if oc == nil {
		return Recommendation{}, ErrNilOwnerContext
	}
	if err := oc.Validate(); err != nil {
		return Recommendation{}, fmt.Errorf("owner context: %w", err)
	}

	results := make([]valuation.FactorResult, 0, len(e.factors))
	for _, f := range e.factors {
		r, err := f.Calculate(&p, vc)
		if err != nil {
			return Recommendation{}, fmt.Errorf("%s factor: %w", f.Name(), err)
		}
		results = append(results, r)
	}
	baseline, err := e.aggregator.Aggregate(results)
	if err != nil {
		return Recommendation{}, err
	}

	var age *int
	if a, ok := p.ResolveAge(vc.Season()); ok {
		age = &a
	}
	final, total, trail := pressure.ApplyChain(baseline.AAV, oc, e.chain(vc), age)

	group, _ := vc.Group(p.NormalizedPosition())
	rec := Recommendation{
		PlayerID:           p.PlayerID,
		Position:           p.NormalizedPosition(),
		Group:              group,
		Age:                age,
		FinalAAV:           final,
		BaseAAV:            baseline.AAV,
		Confidence:         baseline.Confidence,
		MaxYears:           e.budget.MaxYears(oc),
		MaxGuaranteedPct:   e.budget.MaxGuaranteedPct(oc),
		TotalAdjustmentPct: total,
		Factors:            results,
		Trail:              trail,
	}

	e.log.Debug(ctx, "player valued",
		logger.String("player_id", p.PlayerID),
		logger.String("position", rec.Position),
		logger.String("team_id", oc.TeamID),
		logger.Float64("base_aav", rec.BaseAAV),
		logger.Float64("final_aav", rec.FinalAAV),
		logger.Float64("confidence", rec.Confidence),
	)
	return rec, nil
}

// ValidateContract checks a proposed structure against the owner's limits.
func (e *Engine) ValidateContract(years int, guaranteedPct float64, oc *owner.Context) pressure.ConstraintReport {
	return e.budget.ValidateConstraints(years, guaranteedPct, oc)
}

func (e *Engine) chain(vc *valuation.Context) []pressure.Modifier {
	if e.fixedChain {
		return e.modifiers
	}
	opts := append([]pressure.Option{pressure.WithThresholds(vc.Thresholds())}, e.chainOpts...)
	return pressure.DefaultChain(opts...)
}
