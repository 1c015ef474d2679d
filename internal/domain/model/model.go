// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
)

// EvaluationRequest asks for one synchronous valuation of a player for a
// team under the team owner's directives.
type EvaluationRequest struct {
	DynastyID  string           `json:"dynasty_id,omitempty" yaml:"dynasty_id,omitempty"`
	TeamID     string           `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	Player     player.Data      `json:"player" yaml:"player"`
	Directives owner.Directives `json:"owner" yaml:"owner"`
}

// OfferRequest asks for a player to be valued for a team and, if the value
// beats the player's current best, recorded on the offer board.
type OfferRequest struct {
	RequestID   string           // unique id for idempotency
	DynastyID   string           // league save the offer belongs to
	TeamID      string           // offering team
	Player      player.Data      // athlete record as known to the caller
	Directives  owner.Directives // the offering owner's standing directives
	SubmittedAt time.Time
}

// Evaluation returns the synchronous form of r.
func (r *OfferRequest) Evaluation() EvaluationRequest {
	return EvaluationRequest{DynastyID: r.DynastyID, TeamID: r.TeamID, Player: r.Player, Directives: r.Directives}
}

// Offer is a valued OfferRequest.
type Offer struct {
	RequestID        string    `json:"request_id"`
	PlayerID         string    `json:"player_id"`
	TeamID           string    `json:"team_id"`
	Position         string    `json:"position"`
	FinalAAV         float64   `json:"final_aav"`
	BaseAAV          float64   `json:"base_aav"`
	Confidence       float64   `json:"confidence"`
	MaxYears         int       `json:"max_years"`
	MaxGuaranteedPct float64   `json:"max_guaranteed_pct"`
	RecordedAt       time.Time `json:"recorded_at"`
}
