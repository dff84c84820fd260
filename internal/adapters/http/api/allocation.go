package api

import (
	"context"
	"net/http"
)

// AllocationDependencies defines the interface for the judge allocation.
type AllocationDependencies interface {
	Allocation(ctx context.Context) (Allocation, error)
}

// AllocationHandler handles allocation requests.
type AllocationHandler struct {
	deps AllocationDependencies
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(deps AllocationDependencies) *AllocationHandler {
	return &AllocationHandler{deps: deps}
}

// HandleGetAllocation handles GET /allocation requests.
func (h *AllocationHandler) HandleGetAllocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	alloc, err := h.deps.Allocation(r.Context())
	if err != nil {
		writeDomainError(w, "api.get_allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, alloc)
}
