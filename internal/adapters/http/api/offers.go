package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
)

// OfferDependencies defines the asynchronous offer intake.
type OfferDependencies interface {
	SubmitOffer(ctx context.Context, r model.OfferRequest) (service.SubmitResult, error)
}

// OffersHandler handles offer submissions.
type OffersHandler struct {
	deps OfferDependencies
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(deps OfferDependencies) *OffersHandler {
	return &OffersHandler{deps: deps}
}

// offerRequest mirrors the OpenAPI schema for POST /v1/offers.
type offerRequest struct {
	RequestID string           `json:"request_id"`
	DynastyID string           `json:"dynasty_id"`
	TeamID    string           `json:"team_id"`
	Player    player.Data      `json:"player"`
	Owner     owner.Directives `json:"owner"`
}

func (o *offerRequest) validate() error {
	switch {
	case strings.TrimSpace(o.TeamID) == "":
		return errors.New("missing team_id")
	case strings.TrimSpace(o.Player.PlayerID) == "":
		return errors.New("missing player.player_id")
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostOffer handles POST /v1/offers. Accepted offers answer 202, a
// repeated request_id answers 200 and a full queue answers 429.
func (h *OffersHandler) HandlePostOffer(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_offer"
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, badRequest(op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, err))
		return
	}

	res, err := h.deps.SubmitOffer(r.Context(), model.OfferRequest{
		RequestID:  req.RequestID,
		DynastyID:  req.DynastyID,
		TeamID:     req.TeamID,
		Player:     req.Player,
		Directives: req.Owner,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", RequestID: res.RequestID, Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", RequestID: res.RequestID})
}
