package owner

import "fmt"

// Directives is the owner's standing configuration as stored by the host
// application. Zero values take documented defaults.
type Directives struct {
	OwnerPhilosophy    string   `json:"owner_philosophy" yaml:"owner_philosophy"`
	TeamPhilosophy     string   `json:"team_philosophy" yaml:"team_philosophy"`
	WinNowMode         bool     `json:"win_now_mode" yaml:"win_now_mode"`
	MaxContractYears   int      `json:"max_contract_years" yaml:"max_contract_years"`
	MaxGuaranteedPct   float64  `json:"max_guaranteed_pct" yaml:"max_guaranteed_pct"`
	GMTenureYears      int      `json:"gm_tenure_years" yaml:"gm_tenure_years"`
	PlayoffAppearances int      `json:"playoff_appearances" yaml:"playoff_appearances"`
	RecentWinPct       float64  `json:"recent_win_pct" yaml:"recent_win_pct"`
	OwnerPatience      *float64 `json:"owner_patience,omitempty" yaml:"owner_patience,omitempty"`
}

// FromDirectives translates stored directives into a Context for one
// dynasty and team.
func FromDirectives(d Directives, dynastyID, teamID string) (*Context, error) {
	ownerPhil, err := ParsePhilosophy(d.OwnerPhilosophy)
	if err != nil {
		return nil, err
	}
	teamPhil, err := ParseTeamPhilosophy(d.TeamPhilosophy)
	if err != nil {
		return nil, err
	}
	if d.GMTenureYears < 0 || d.PlayoffAppearances < 0 {
		return nil, fmt.Errorf("%w: tenure and playoff appearances must not be negative", ErrInvalidDirective)
	}
	if d.RecentWinPct < 0 || d.RecentWinPct > 1 {
		return nil, fmt.Errorf("%w: recent_win_pct %.3f outside [0,1]", ErrInvalidDirective, d.RecentWinPct)
	}

	patience := DefaultOwnerPatience
	if d.OwnerPatience != nil {
		patience = *d.OwnerPatience
		if patience < 0 || patience > 1 {
			return nil, fmt.Errorf("%w: owner_patience %.3f outside [0,1]", ErrInvalidDirective, patience)
		}
	}

	ctx := &Context{
		DynastyID: dynastyID,
		TeamID:    teamID,
		JobSecurity: JobSecurity{
			TenureYears:        d.GMTenureYears,
			PlayoffAppearances: d.PlayoffAppearances,
			RecentWinPct:       d.RecentWinPct,
			OwnerPatience:      patience,
		},
		OwnerPhilosophy:  ownerPhil,
		TeamPhilosophy:   teamPhil,
		WinNowMode:       d.WinNowMode,
		MaxContractYears: d.MaxContractYears,
		MaxGuaranteedPct: d.MaxGuaranteedPct,
	}
	if ctx.MaxContractYears == 0 {
		ctx.MaxContractYears = DefaultMaxContractYears
	}
	if ctx.MaxGuaranteedPct == 0 {
		ctx.MaxGuaranteedPct = DefaultMaxGuaranteedPct
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return ctx, nil
}
