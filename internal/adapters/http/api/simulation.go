package api

import (
	"context"
	"net/http"
)

// SimulationDependencies defines the interface for the simulation session.
type SimulationDependencies interface {
	Simulation(ctx context.Context) (Simulation, error)
	RunDay(ctx context.Context) (DayReport, error)
	Reset(ctx context.Context) (Simulation, error)
}

// SimulationHandler handles simulation requests.
type SimulationHandler struct {
	deps SimulationDependencies
}

// NewSimulationHandler creates a new simulation handler.
func NewSimulationHandler(deps SimulationDependencies) *SimulationHandler {
	return &SimulationHandler{deps: deps}
}

// HandleGetSimulation handles GET /simulation requests.
func (h *SimulationHandler) HandleGetSimulation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sim, err := h.deps.Simulation(r.Context())
	if err != nil {
		writeDomainError(w, "api.get_simulation", err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

// HandleRunDay handles POST /simulation/day requests.
func (h *SimulationHandler) HandleRunDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	report, err := h.deps.RunDay(r.Context())
	if err != nil {
		writeDomainError(w, "api.run_day", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleReset handles POST /simulation/reset requests.
func (h *SimulationHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sim, err := h.deps.Reset(r.Context())
	if err != nil {
		writeDomainError(w, "api.reset_simulation", err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}
