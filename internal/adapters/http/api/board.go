package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const defaultBoardLimit = 10

// BoardDependencies defines the offer board read.
type BoardDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// BoardHandler handles offer board requests.
type BoardHandler struct {
	deps     BoardDependencies
	maxLimit int
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies, maxLimit int) *BoardHandler {
	return &BoardHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetBoard handles GET /v1/board?limit=N. The limit defaults to 10.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_board"
	n := defaultBoardLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, errors.New("limit must be a positive integer")))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded",
			fmt.Errorf("%s: %w: limit must not exceed %d", op, ErrLimitExceeded, h.maxLimit))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
