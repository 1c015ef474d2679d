package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/aav/internal/domain/owner"
	"github.com/okian/aav/internal/domain/pressure"
)

// ContractDependencies defines the contract structure check.
type ContractDependencies interface {
	ValidateContract(ctx context.Context, years int, guaranteedPct float64, d owner.Directives) (pressure.ConstraintReport, error)
}

// ContractsHandler handles contract structure checks.
type ContractsHandler struct {
	deps ContractDependencies
}

// NewContractsHandler creates a new contracts handler.
func NewContractsHandler(deps ContractDependencies) *ContractsHandler {
	return &ContractsHandler{deps: deps}
}

type contractRequest struct {
	Years         *int             `json:"years"`
	GuaranteedPct *float64         `json:"guaranteed_pct"`
	Owner         owner.Directives `json:"owner"`
}

// HandleValidate handles POST /v1/contracts/validate. Violations are data:
// an invalid structure still answers 200 with is_valid false.
func (h *ContractsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_contract"
	var req contractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, badRequest(op, err))
		return
	}
	if req.Years == nil || req.GuaranteedPct == nil {
		writeError(w, http.StatusBadRequest, "bad_request", badRequest(op, errors.New("years and guaranteed_pct are required")))
		return
	}
	report, err := h.deps.ValidateContract(r.Context(), *req.Years, *req.GuaranteedPct, req.Owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
