// Package service provides the application service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	repository "github.com/okian/docket/internal/adapters/repository"
	allocation "github.com/okian/docket/internal/domain/allocation"
	"github.com/okian/docket/internal/domain/dedupe"
	docket "github.com/okian/docket/internal/domain/docket"
	intake "github.com/okian/docket/internal/domain/intake"
	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
	simulation "github.com/okian/docket/internal/domain/simulation"
	"github.com/okian/docket/internal/domain/types"
	"github.com/okian/docket/pkg/logger"
	"github.com/okian/docket/pkg/metrics"
)

// Service owns the docket and the simulation session. All operations are
// serialised by a single mutex.
type Service struct {
	mu sync.Mutex

	// Core components
	store    *repository.TreapStore
	registry dedupe.Registry
	scorer   *scoring.Scorer
	session  *simulation.Session
	source   CaseSource
	rejected []docket.Rejection

	// Configuration
	roster    []model.Judge
	capacity  int
	rate      float64
	seed      int64
	rng       simulation.Source
	weights   scoring.Weights
	storeOpts []repository.Option
	caseFold  bool

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		roster:   allocation.DefaultRoster(),
		capacity: allocation.DefaultCapacity,
		rate:     simulation.DefaultAdjournmentRate,
		weights:  scoring.DefaultWeights(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the docket from the source and opens a simulation session.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting docket service...")

	s.scorer = scoring.New(scoring.WithWeights(s.weights))
	s.registry = dedupe.NewInMemoryRegistry(dedupe.WithCaseFold(s.caseFold))
	s.store = repository.NewTreapStore(ctx, s.storeOpts...)
	s.rejected = nil

	if s.source != nil {
		records, err := s.source.Load(ctx)
		if err != nil {
			metrics.RecordSourceFailure("load")
			_ = s.store.Close()
			return fmt.Errorf("load docket: %w", err)
		}
		s.admitBatch(ctx, records)
	}

	simOpts := []simulation.Option{
		simulation.WithRoster(s.roster),
		simulation.WithCapacity(s.capacity),
		simulation.WithAdjournmentRate(s.rate),
		simulation.WithSeed(s.seed),
	}
	if s.rng != nil {
		simOpts = append(simOpts, simulation.WithSource(s.rng))
	}

	start := time.Now()
	s.session = simulation.NewSession(s.store.All(ctx), simOpts...)
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))
	s.syncAssignments(ctx, s.session.Allocation())
	s.publishSession()

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "docket service started",
		logger.Int("cases", s.store.Count(ctx)),
		logger.Int("rejected", len(s.rejected)),
		logger.Int("judges", len(s.roster)),
		logger.Int("capacity", s.capacity),
		logger.Float64("adjournmentRate", s.rate),
		logger.String("session", s.session.ID()),
	)

	return nil
}

// admitBatch scores the loaded records and files the accepted ones.
func (s *Service) admitBatch(ctx context.Context, records []intake.Record) {
	cases, rejected := docket.ScoreAndAugment(s.scorer, records)
	for _, c := range cases {
		s.registry.SeenAndRecord(ctx, c.CaseNo)
		if _, err := s.store.Insert(ctx, c); err != nil {
			rejected = append(rejected, docket.Rejection{Index: int(c.Seq), CaseNo: c.CaseNo, Err: err})
			continue
		}
		metrics.RecordCaseScored()
	}

	for _, r := range rejected {
		metrics.RecordCaseRejected(rejectionReason(r.Err))
		s.logger.Warn(ctx, "case record rejected",
			logger.Int("index", r.Index),
			logger.String("caseNo", r.CaseNo),
			logger.Error(r.Err),
		)
	}
	s.rejected = rejected
}

// Stop releases the store and closes the source if it holds resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping docket service...")

	if s.store != nil {
		_ = s.store.Close()
	}
	if closer, ok := s.source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error(context.Background(), "failed to close case source", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "docket service stopped")
}

// Dashboard returns the prioritized case table. A limit of zero or less
// returns every case.
func (s *Service) Dashboard(ctx context.Context, limit int) (types.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.Dashboard{}, ErrNotStarted
	}

	var rows []types.CaseRow
	if limit > 0 {
		entries, err := s.store.TopN(ctx, limit)
		if err != nil {
			return types.Dashboard{}, err
		}
		rows = make([]types.CaseRow, len(entries))
		for i, e := range entries {
			rows[i] = types.FromCase(e.Rank, e.Case)
		}
	} else {
		rows = types.FromCases(s.store.All(ctx))
	}

	counts := s.store.CountByStatus(ctx)
	dash := types.Dashboard{
		Total:    s.store.Count(ctx),
		Pending:  counts[model.StatusPending],
		Disposed: counts[model.StatusDisposed],
		Cases:    rows,
	}
	for _, r := range s.rejected {
		dash.Rejected = append(dash.Rejected, types.Rejection{Index: r.Index, CaseNo: r.CaseNo, Reason: r.Err.Error()})
	}
	return dash, nil
}

// AddCase validates, scores and files a new case, appends it to the source
// and admits it to the running session.
func (s *Service) AddCase(ctx context.Context, rec intake.Record) (types.CaseRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.CaseRow{}, ErrNotStarted
	}
	ctx = logger.WithFields(ctx, logger.String("caseNo", rec.Get(intake.FieldCaseNo)))

	c, err := docket.Augment(s.scorer, rec)
	if err != nil {
		metrics.RecordCaseRejected(rejectionReason(err))
		s.logger.Debug(ctx, "case rejected", logger.Error(err))
		return types.CaseRow{}, err
	}

	if s.registry.SeenAndRecord(ctx, c.CaseNo) {
		metrics.RecordCaseRejected("duplicate")
		return types.CaseRow{}, fmt.Errorf("%w: %s", docket.ErrDuplicateCase, c.CaseNo)
	}

	if s.source != nil {
		if err := s.source.Append(ctx, intake.RecordOf(c)); err != nil {
			s.registry.Unrecord(ctx, c.CaseNo)
			metrics.RecordSourceFailure("append")
			if errors.Is(err, docket.ErrDuplicateCase) {
				return types.CaseRow{}, err
			}
			return types.CaseRow{}, fmt.Errorf("append case %s: %w", c.CaseNo, err)
		}
		metrics.RecordSourceAppend()
	}

	stored, err := s.store.Insert(ctx, c)
	if err != nil {
		s.registry.Unrecord(ctx, c.CaseNo)
		return types.CaseRow{}, err
	}
	c = stored
	metrics.RecordCaseScored()

	start := time.Now()
	s.session.Admit(c)
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))
	s.syncAssignments(ctx, s.session.Allocation())
	s.publishSession()

	entry, err := s.store.Rank(ctx, c.CaseNo)
	if err != nil {
		return types.CaseRow{}, err
	}

	s.logger.Info(ctx, "case filed",
		logger.Float64("score", c.Score),
		logger.Int("rank", entry.Rank),
		logger.String("judge", entry.Case.Judge),
	)
	return types.FromCase(entry.Rank, entry.Case), nil
}

// Case returns a case with its current rank.
func (s *Service) Case(ctx context.Context, caseNo string) (types.CaseRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.CaseRow{}, ErrNotStarted
	}

	entry, err := s.store.Rank(ctx, caseNo)
	if err != nil {
		return types.CaseRow{}, err
	}
	return types.FromCase(entry.Rank, entry.Case), nil
}

// Allocation returns the judge allocation of the active cases.
func (s *Service) Allocation(ctx context.Context) (types.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.Allocation{}, ErrNotStarted
	}
	return types.FromAllocation(s.session.Allocation()), nil
}

// Simulation returns the state of the running session.
func (s *Service) Simulation(ctx context.Context) (types.Simulation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.Simulation{}, ErrNotStarted
	}
	return s.simulationView(), nil
}

// RunDay simulates one day, writes the hearings back to the docket and
// records the day in the source if it keeps a log.
func (s *Service) RunDay(ctx context.Context) (types.DayReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.DayReport{}, ErrNotStarted
	}

	start := time.Now()
	report := s.session.Step()
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))
	ctx = logger.WithFields(ctx,
		logger.String("session", report.SessionID),
		logger.Int("day", report.Day),
	)

	for _, c := range report.Heard {
		if err := s.store.Update(ctx, c); err != nil {
			return types.DayReport{}, fmt.Errorf("record hearing %s: %w", c.CaseNo, err)
		}
	}
	s.syncAssignments(ctx, report.Allocation)

	if rec, ok := s.source.(DayRecorder); ok {
		if err := rec.RecordDay(ctx, report); err != nil {
			metrics.RecordSourceFailure("record_day")
			s.logger.Error(ctx, "failed to record simulated day", logger.Error(err))
		}
	}

	metrics.RecordSimulatedDay(report.Advanced, report.Adjourned)
	s.publishSession()

	s.logger.Info(ctx, "simulated day",
		logger.Int("advanced", report.Advanced),
		logger.Int("adjourned", report.Adjourned),
		logger.Strings("disposed", report.NewlyDisposed),
		logger.Int("disposedTotal", report.DisposedTotal),
	)

	newly := report.NewlyDisposed
	if newly == nil {
		newly = []string{}
	}
	return types.DayReport{
		SessionID:     report.SessionID,
		Day:           report.Day,
		Advanced:      report.Advanced,
		Adjourned:     report.Adjourned,
		NewlyDisposed: newly,
		DisposedTotal: report.DisposedTotal,
		Active:        len(report.Allocation.Cases),
		Unassigned:    report.Allocation.Unassigned,
		Judges:        types.FromSummary(report.Allocation.Summary()),
	}, nil
}

// Reset starts a new session over the pending cases in the docket.
func (s *Service) Reset(ctx context.Context) (types.Simulation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.Simulation{}, ErrNotStarted
	}

	start := time.Now()
	s.session.Reset(s.store.All(ctx))
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))
	s.syncAssignments(ctx, s.session.Allocation())

	metrics.RecordSessionReset()
	s.publishSession()
	s.logger.Info(ctx, "simulation reset", logger.String("session", s.session.ID()))

	return s.simulationView(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := types.Stats{
		Started:         s.started,
		Judges:          len(s.roster),
		Capacity:        s.capacity,
		AdjournmentRate: s.rate,
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	counts := s.store.CountByStatus(ctx)
	alloc := s.session.Allocation()

	stats.TotalCases = s.store.Count(ctx)
	stats.PendingCases = counts[model.StatusPending]
	stats.DisposedCases = counts[model.StatusDisposed]
	stats.RejectedRecords = len(s.rejected)
	stats.SessionID = s.session.ID()
	stats.Day = s.session.Day()
	stats.ActiveCases = len(alloc.Cases)
	stats.UnassignedCases = alloc.Unassigned
	stats.UptimeSeconds = int(time.Since(s.startedAt).Seconds())
	return stats
}

// syncAssignments writes the judge on each allocated case back to the docket.
func (s *Service) syncAssignments(ctx context.Context, res allocation.Result) {
	for _, c := range res.Cases {
		stored, err := s.store.Get(ctx, c.CaseNo)
		if err != nil || stored.Judge == c.Judge {
			continue
		}
		stored.Judge = c.Judge
		if err := s.store.Update(ctx, stored); err != nil {
			s.logger.Warn(ctx, "failed to store judge assignment",
				logger.String("caseNo", c.CaseNo),
				logger.Error(err),
			)
		}
	}
}

func (s *Service) publishSession() {
	alloc := s.session.Allocation()
	metrics.UpdateActiveCases(len(alloc.Cases))
	metrics.UpdateDisposedTotal(s.session.Disposed())
	metrics.UpdateUnassignedCases(alloc.Unassigned)
	for _, j := range alloc.Judges {
		metrics.UpdateJudgeLoad(j.Name, string(j.Level), j.Load)
	}
}

func (s *Service) simulationView() types.Simulation {
	return types.Simulation{
		SessionID:       s.session.ID(),
		Day:             s.session.Day(),
		AdjournmentRate: s.session.Rate(),
		DisposedTotal:   s.session.Disposed(),
		Active:          types.FromCases(s.session.Active()),
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, docket.ErrDuplicateCase):
		return "duplicate"
	case errors.Is(err, intake.ErrUnscoreable):
		return "unscoreable"
	case errors.Is(err, intake.ErrValidation):
		return "validation"
	default:
		return "other"
	}
}
