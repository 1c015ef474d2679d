package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/aav/internal/app"
	"github.com/okian/aav/internal/domain/engine"
	"github.com/okian/aav/internal/domain/model"
	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/player"
)

// EvaluateDependencies defines the valuation operations.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, req model.EvaluationRequest) (engine.Recommendation, error)
	EvaluatePool(ctx context.Context, reqs []model.EvaluationRequest) ([]service.PoolResult, error)
}

// EvaluateHandler handles synchronous valuation requests.
type EvaluateHandler struct {
	deps        EvaluateDependencies
	maxPoolSize int
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies, maxPoolSize int) *EvaluateHandler {
	return &EvaluateHandler{deps: deps, maxPoolSize: maxPoolSize}
}

// poolRequest values several players for one team under one set of owner
// directives.
type poolRequest struct {
	DynastyID string           `json:"dynasty_id"`
	TeamID    string           `json:"team_id"`
	Owner     owner.Directives `json:"owner"`
	Players   []player.Data    `json:"players"`
}

// HandleEvaluate handles POST /v1/evaluate.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	var req model.EvaluationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, badRequest(op, err))
		return
	}
	rec, err := h.deps.Evaluate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleEvaluatePool handles POST /v1/evaluate/pool.
func (h *EvaluateHandler) HandleEvaluatePool(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_pool"
	var req poolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, badRequest(op, err))
		return
	}
	switch {
	case len(req.Players) == 0:
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, errors.New("players must not be empty")))
		return
	case len(req.Players) > h.maxPoolSize:
		writeError(w, http.StatusBadRequest, "limit_exceeded",
			fmt.Errorf("%s: %w: at most %d players", op, ErrLimitExceeded, h.maxPoolSize))
		return
	}

	reqs := make([]model.EvaluationRequest, len(req.Players))
	for i, p := range req.Players {
		reqs[i] = model.EvaluationRequest{
			DynastyID:  req.DynastyID,
			TeamID:     req.TeamID,
			Player:     p,
			Directives: req.Owner,
		}
	}
	results, err := h.deps.EvaluatePool(r.Context(), reqs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, poolResponse{Results: results})
}

type poolResponse struct {
	Results []service.PoolResult `json:"results"`
}
