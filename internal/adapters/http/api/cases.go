package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	intake "github.com/okian/docket/internal/domain/intake"
)

const maxCaseBodyBytes = 64 << 10

// CaseDependencies defines the interface for filing and looking up cases.
type CaseDependencies interface {
	AddCase(ctx context.Context, rec intake.Record) (CaseRow, error)
	Case(ctx context.Context, caseNo string) (CaseRow, error)
}

// CasesHandler handles case requests.
type CasesHandler struct {
	deps CaseDependencies
}

// NewCasesHandler creates a new cases handler.
func NewCasesHandler(deps CaseDependencies) *CasesHandler {
	return &CasesHandler{deps: deps}
}

// HandlePostCase handles POST /cases requests. The body is a case record
// keyed by the intake field names.
func (h *CasesHandler) HandlePostCase(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_case"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var rec intake.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCaseBodyBytes)).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	row, err := h.deps.AddCase(r.Context(), rec)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

// HandleGetCase handles GET /cases/{caseNo...} requests. Case numbers may
// contain slashes, either raw or escaped as %2F.
func (h *CasesHandler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_case"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	caseNo := r.PathValue("caseNo")
	if strings.TrimSpace(caseNo) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	row, err := h.deps.Case(r.Context(), caseNo)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
