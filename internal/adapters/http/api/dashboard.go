package api

import (
	"context"
	"net/http"
	"strconv"
)

// DashboardDependencies defines the interface for the prioritized case table.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, limit int) (Dashboard, error)
}

// DashboardHandler handles dashboard requests
type DashboardHandler struct {
	deps     DashboardDependencies
	maxLimit int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(deps DashboardDependencies, maxLimit int) *DashboardHandler {
	return &DashboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetDashboard handles GET /dashboard?limit=N requests. Without a
// limit every case is returned.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrLimitExceeded))
			return
		}
	}

	dash, err := h.deps.Dashboard(r.Context(), n)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
