package pressure

import (
	"fmt"
	"math"

	"github.com/okian/aav/internal/domain/owner"
)

// DefaultMaxSecurityAdjustment bounds the job-security premium.
const DefaultMaxSecurityAdjustment = 0.20

// securityCurve maps pressure to adjustment. It is flat near zero and steepens
// as the seat gets hotter.
var securityCurve = []struct{ pressure, adjustment float64 }{ //nolint:gochecknoglobals // fixed table
	{0, 0},
	{0.3, 0.02},
	{0.6, 0.08},
	{1.0, 0.20},
}

// JobSecurityModifier adds a premium when the GM is under pressure to win.
type JobSecurityModifier struct {
	maxAdjustment float64
}

// NewJobSecurityModifier builds the stage. Only WithMaxAdjustment applies.
func NewJobSecurityModifier(opts ...Option) *JobSecurityModifier {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &JobSecurityModifier{maxAdjustment: s.maxAdjustment}
}

// Name implements Modifier.
func (m *JobSecurityModifier) Name() string { return NameJobSecurity }

// PressureLevel is the inverse of the GM's security score.
func (m *JobSecurityModifier) PressureLevel(oc *owner.Context, _ *int) float64 {
	if oc == nil {
		return 0
	}
	return unit(1 - oc.JobSecurity.SecurityScore())
}

// Adjustment returns the relative premium for a pressure level.
func (m *JobSecurityModifier) Adjustment(pressure float64) float64 {
	pressure = unit(pressure)
	adj := securityCurve[len(securityCurve)-1].adjustment
	for i := 1; i < len(securityCurve); i++ {
		lo, hi := securityCurve[i-1], securityCurve[i]
		if pressure <= hi.pressure {
			adj = lo.adjustment + (hi.adjustment-lo.adjustment)*(pressure-lo.pressure)/(hi.pressure-lo.pressure)
			break
		}
	}
	return math.Max(-m.maxAdjustment, math.Min(m.maxAdjustment, adj))
}

// Apply implements Modifier.
func (m *JobSecurityModifier) Apply(aav float64, oc *owner.Context, age *int) (float64, string) {
	if oc == nil {
		return aav, "no owner context; job security not applied"
	}
	p := m.PressureLevel(oc, age)
	adj := m.Adjustment(p)
	if adj == 0 {
		return aav, fmt.Sprintf("GM seat secure (pressure %.2f); no premium", p)
	}
	return aav * (1 + adj), fmt.Sprintf("GM under pressure %.2f pays %+.1f%% to win now", p, adj*100)
}

// Breakdown implements Modifier.
func (m *JobSecurityModifier) Breakdown(_ float64, oc *owner.Context, age *int) map[string]any {
	if oc == nil {
		return map[string]any{"applied": false}
	}
	p := m.PressureLevel(oc, age)
	return map[string]any{
		"security_score": oc.JobSecurity.SecurityScore(),
		"pressure":       p,
		"adjustment":     m.Adjustment(p),
		"max_adjustment": m.maxAdjustment,
	}
}
