package pressure

import (
	"fmt"

	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
)

const winNowModeBoost = 0.10

var winNowTable = map[owner.TeamPhilosophy]map[player.AgeCategory]float64{ //nolint:gochecknoglobals // fixed table
	owner.WinNow: {
		player.AgeVeteran: 0.12,
		player.AgePrime:   0.05,
		player.AgeYoung:   -0.05,
	},
	owner.Rebuild: {
		player.AgeVeteran: -0.10,
		player.AgePrime:   0,
		player.AgeYoung:   0.08,
	},
	owner.Maintain: {
		player.AgeVeteran: -0.03,
		player.AgePrime:   0,
		player.AgeYoung:   0.03,
	},
}

var winNowPressure = map[owner.TeamPhilosophy]float64{ //nolint:gochecknoglobals // fixed table
	owner.WinNow:   0.8,
	owner.Maintain: 0.5,
	owner.Rebuild:  0.3,
}

// WinNowModifier shifts value toward the ages the team's direction favors.
type WinNowModifier struct {
	thresholds player.Thresholds
}

// NewWinNowModifier builds the stage. Only WithThresholds applies.
func NewWinNowModifier(opts ...Option) *WinNowModifier {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &WinNowModifier{thresholds: s.thresholds}
}

// Name implements Modifier.
func (m *WinNowModifier) Name() string { return NameWinNow }

// PressureLevel reports the philosophy's base pressure, raised by win-now
// mode. The raise never feeds back into the adjustment.
func (m *WinNowModifier) PressureLevel(oc *owner.Context, _ *int) float64 {
	if oc == nil {
		return 0
	}
	p := winNowPressure[oc.TeamPhilosophy]
	if oc.WinNowMode {
		p += winNowModeBoost
	}
	return unit(p)
}

// Adjustment returns the table entry for the philosophy and age. ok is false
// when age is unknown.
func (m *WinNowModifier) Adjustment(oc *owner.Context, age *int) (adj float64, category player.AgeCategory, ok bool) {
	if oc == nil || age == nil {
		return 0, "", false
	}
	category = m.thresholds.Category(*age)
	return winNowTable[oc.TeamPhilosophy][category], category, true
}

// Apply implements Modifier.
func (m *WinNowModifier) Apply(aav float64, oc *owner.Context, age *int) (float64, string) {
	adj, category, ok := m.Adjustment(oc, age)
	if !ok {
		return aav, "age unknown; no win-now adjustment"
	}
	if adj == 0 {
		return aav, fmt.Sprintf("%s team neutral on %s player", oc.TeamPhilosophy, category)
	}
	return aav * (1 + adj), fmt.Sprintf("%s team %+.0f%% on %s player", oc.TeamPhilosophy, adj*100, category)
}

// Breakdown implements Modifier.
func (m *WinNowModifier) Breakdown(_ float64, oc *owner.Context, age *int) map[string]any {
	adj, category, ok := m.Adjustment(oc, age)
	out := map[string]any{"applied": ok}
	if oc != nil {
		out["team_philosophy"] = string(oc.TeamPhilosophy)
		out["win_now_mode"] = oc.WinNowMode
	}
	if ok {
		out["age"] = *age
		out["age_category"] = string(category)
		out["adjustment"] = adj
	}
	return out
}
