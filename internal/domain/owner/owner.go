// Package owner models the organizational context a valuation is adjusted
// against: who is buying, how secure the GM is and what the owner allows.
package owner

import (
	"fmt"
	"math"
	"strings"
)

// Philosophy is the owner's spending stance.
type Philosophy string

// Owner philosophies.
const (
	Aggressive   Philosophy = "aggressive"
	Balanced     Philosophy = "balanced"
	Conservative Philosophy = "conservative"
)

// TeamPhilosophy is the roster-building direction.
type TeamPhilosophy string

// Team philosophies.
const (
	WinNow   TeamPhilosophy = "win_now"
	Maintain TeamPhilosophy = "maintain"
	Rebuild  TeamPhilosophy = "rebuild"
)

// Directive defaults.
const (
	DefaultMaxContractYears = 5
	DefaultMaxGuaranteedPct = 0.75
	DefaultOwnerPatience    = 0.5
	MaxContractYearsLimit   = 7
)

// Security score weights and saturation points.
const (
	tenureWeight      = 0.25
	playoffsWeight    = 0.25
	winPctWeight      = 0.30
	patienceWeight    = 0.20
	tenureSaturation  = 5.0
	playoffSaturation = 3.0
)

// JobSecurity describes how safe the general manager's seat is.
type JobSecurity struct {
	TenureYears        int     `json:"tenure_years" yaml:"tenure_years"`
	PlayoffAppearances int     `json:"playoff_appearances" yaml:"playoff_appearances"`
	RecentWinPct       float64 `json:"recent_win_pct" yaml:"recent_win_pct"`
	OwnerPatience      float64 `json:"owner_patience" yaml:"owner_patience"`
}

// SecurityScore blends tenure, playoff history, recent winning and owner
// patience into [0,1]. Higher is safer.
func (j JobSecurity) SecurityScore() float64 {
	tenure := math.Min(float64(max(j.TenureYears, 0))/tenureSaturation, 1)
	playoffs := math.Min(float64(max(j.PlayoffAppearances, 0))/playoffSaturation, 1)
	score := tenureWeight*tenure +
		playoffsWeight*playoffs +
		winPctWeight*unit(j.RecentWinPct) +
		patienceWeight*unit(j.OwnerPatience)
	return unit(score)
}

// Context is built fresh per request and never mutated by the chain.
type Context struct {
	DynastyID        string         `json:"dynasty_id"`
	TeamID           string         `json:"team_id"`
	JobSecurity      JobSecurity    `json:"job_security"`
	OwnerPhilosophy  Philosophy     `json:"owner_philosophy"`
	TeamPhilosophy   TeamPhilosophy `json:"team_philosophy"`
	WinNowMode       bool           `json:"win_now_mode"`
	MaxContractYears int            `json:"max_contract_years"`
	MaxGuaranteedPct float64        `json:"max_guaranteed_pct"`
}

// Validate checks enum membership and contract limits.
func (c *Context) Validate() error {
	if _, err := ParsePhilosophy(string(c.OwnerPhilosophy)); err != nil {
		return err
	}
	if _, err := ParseTeamPhilosophy(string(c.TeamPhilosophy)); err != nil {
		return err
	}
	if c.MaxContractYears < 1 || c.MaxContractYears > MaxContractYearsLimit {
		return fmt.Errorf("%w: max_contract_years %d outside [1,%d]",
			ErrInvalidDirective, c.MaxContractYears, MaxContractYearsLimit)
	}
	if c.MaxGuaranteedPct <= 0 || c.MaxGuaranteedPct > 1 {
		return fmt.Errorf("%w: max_guaranteed_pct %.2f outside (0,1]", ErrInvalidDirective, c.MaxGuaranteedPct)
	}
	return nil
}

// ParsePhilosophy accepts any casing; empty means balanced.
func ParsePhilosophy(s string) (Philosophy, error) {
	switch p := Philosophy(normalize(s)); p {
	case "":
		return Balanced, nil
	case Aggressive, Balanced, Conservative:
		return p, nil
	default:
		return "", fmt.Errorf("%w: owner philosophy %q", ErrInvalidDirective, s)
	}
}

// ParseTeamPhilosophy accepts "win now", "win-now" and "win_now" alike;
// empty means maintain.
func ParseTeamPhilosophy(s string) (TeamPhilosophy, error) {
	switch p := TeamPhilosophy(normalize(s)); p {
	case "":
		return Maintain, nil
	case WinNow, Maintain, Rebuild:
		return p, nil
	default:
		return "", fmt.Errorf("%w: team philosophy %q", ErrInvalidDirective, s)
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
