// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	repository "github.com/okian/docket/internal/adapters/repository"
	docket "github.com/okian/docket/internal/domain/docket"
	intake "github.com/okian/docket/internal/domain/intake"
	"github.com/okian/docket/internal/domain/types"
)

// DefaultMaxLimit caps the dashboard limit when none is configured.
const DefaultMaxLimit = 1000

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DashboardDependencies
	CaseDependencies
	AllocationDependencies
	SimulationDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	dashboardHandler  *DashboardHandler
	casesHandler      *CasesHandler
	allocationHandler *AllocationHandler
	simulationHandler *SimulationHandler
}

// NewServer creates a new API server with all handlers. A maxLimit below 1
// falls back to DefaultMaxLimit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		dashboardHandler:  NewDashboardHandler(deps, maxLimit),
		casesHandler:      NewCasesHandler(deps),
		allocationHandler: NewAllocationHandler(deps),
		simulationHandler: NewSimulationHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/cases", MetricsMiddleware(s.casesHandler.HandlePostCase, "cases"))
	mux.HandleFunc("/cases/{caseNo...}", MetricsMiddleware(s.casesHandler.HandleGetCase, "case"))
	mux.HandleFunc("/allocation", MetricsMiddleware(s.allocationHandler.HandleGetAllocation, "allocation"))
	mux.HandleFunc("/simulation", MetricsMiddleware(s.simulationHandler.HandleGetSimulation, "simulation"))
	mux.HandleFunc("/simulation/day", MetricsMiddleware(s.simulationHandler.HandleRunDay, "simulation_day"))
	mux.HandleFunc("/simulation/reset", MetricsMiddleware(s.simulationHandler.HandleReset, "simulation_reset"))
}

// Response shapes re-exported for clients of the API package.
type (
	CaseRow    = types.CaseRow
	Dashboard  = types.Dashboard
	Allocation = types.Allocation
	Simulation = types.Simulation
	DayReport  = types.DayReport
	Stats      = types.Stats
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	noteErrorCode(w, code)
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps errors from the service to status codes.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, intake.ErrValidation), errors.Is(err, intake.ErrUnscoreable):
		writeError(w, http.StatusBadRequest, "rejected", WrapKind(op, ErrRejected, err))
	case errors.Is(err, docket.ErrDuplicateCase):
		writeError(w, http.StatusConflict, "duplicate", Wrap(op, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
