package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Rank(ctx context.Context, playerID string) (Entry, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /v1/rank/{playerID} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	entry, err := h.deps.Rank(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
