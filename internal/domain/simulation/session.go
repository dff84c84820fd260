package simulation

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	allocation "github.com/okian/docket/internal/domain/allocation"
	docket "github.com/okian/docket/internal/domain/docket"
	model "github.com/okian/docket/internal/domain/model"
)

// Option applies a configuration option to a Session.
type Option func(*Session)

// WithAdjournmentRate sets the adjournment probability. Values outside
// [0, 1] are ignored.
func WithAdjournmentRate(rate float64) Option {
	return func(s *Session) {
		if rate >= 0 && rate <= 1 {
			s.rate = rate
		}
	}
}

// WithSource injects the random source.
func WithSource(src Source) Option {
	return func(s *Session) {
		if src != nil {
			s.rng = src
		}
	}
}

// WithSeed uses a math/rand source seeded with seed. Zero keeps the
// time-based default.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // simulation, not security
		}
	}
}

// WithRoster sets the judges used for allocation after each day.
func WithRoster(judges []model.Judge) Option {
	return func(s *Session) {
		s.roster = append([]model.Judge(nil), judges...)
	}
}

// WithCapacity sets the per-judge capacity.
func WithCapacity(capacity int) Option {
	return func(s *Session) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// DayReport summarises one simulated day.
type DayReport struct {
	SessionID     string
	Day           int
	Advanced      int          // pending cases that completed a hearing
	Adjourned     int          // pending cases whose hearing was adjourned
	NewlyDisposed []string     // case numbers disposed today
	Heard         []model.Case // cases that completed a hearing, after the hearing
	DisposedTotal int          // cumulative disposed count for the session
	Allocation    allocation.Result
}

// Session is the state of a running simulation: the active (undisposed)
// cases, the cumulative disposed count and the day counter. It is not safe
// for concurrent use; callers serialise access.
type Session struct {
	id       string
	rng      Source
	rate     float64
	roster   []model.Judge
	capacity int

	day        int
	disposed   int
	active     []model.Case
	allocation allocation.Result
}

// NewSession creates a session over cases with configuration options.
func NewSession(cases []model.Case, opts ...Option) *Session {
	s := &Session{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation, not security
		rate:     DefaultAdjournmentRate,
		roster:   allocation.DefaultRoster(),
		capacity: allocation.DefaultCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.Reset(cases)
	return s
}

// Reset starts a fresh session over the pending cases in cases. The day
// counter and disposed count go back to zero and a new id is issued.
func (s *Session) Reset(cases []model.Case) {
	active := make([]model.Case, 0, len(cases))
	for _, c := range cases {
		if !c.Disposed() {
			active = append(active, c)
		}
	}

	s.id = uuid.NewString()
	s.day = 0
	s.disposed = 0
	s.active = docket.SortByPriority(active)
	s.reallocate()
}

// Admit adds a newly filed case to the active list and reallocates.
func (s *Session) Admit(c model.Case) {
	if c.Disposed() {
		return
	}
	for _, a := range s.active {
		if a.CaseNo == c.CaseNo {
			return
		}
	}
	s.active = docket.SortByPriority(append(s.active, c))
	s.reallocate()
}

// Step simulates one day: hearings are held on the active cases, disposed
// cases leave the active list and the remaining ones are reallocated.
func (s *Session) Step() DayReport {
	before := s.active
	after := SimulateDay(before, s.rate, s.rng)

	report := DayReport{Day: s.day + 1}
	remaining := make([]model.Case, 0, len(after))
	for i, c := range after {
		if c.HearingsCompleted > before[i].HearingsCompleted {
			report.Advanced++
			report.Heard = append(report.Heard, c)
		} else {
			report.Adjourned++
		}
		if c.Disposed() {
			report.NewlyDisposed = append(report.NewlyDisposed, c.CaseNo)
			continue
		}
		remaining = append(remaining, c)
	}

	s.day++
	s.disposed += len(report.NewlyDisposed)
	s.active = remaining
	s.reallocate()

	report.SessionID = s.id
	report.DisposedTotal = s.disposed
	report.Allocation = s.Allocation()
	return report
}

func (s *Session) reallocate() {
	s.allocation = allocation.Allocate(s.active, s.roster, s.capacity)
	s.active = s.allocation.Cases
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Day returns the number of days simulated since the last reset.
func (s *Session) Day() int { return s.day }

// Disposed returns the cumulative disposed count since the last reset.
func (s *Session) Disposed() int { return s.disposed }

// Rate returns the adjournment rate.
func (s *Session) Rate() float64 { return s.rate }

// Active returns a copy of the active cases in priority order with their
// current judge assignments.
func (s *Session) Active() []model.Case {
	return append([]model.Case(nil), s.active...)
}

// Allocation returns the current allocation of the active cases.
func (s *Session) Allocation() allocation.Result {
	res := s.allocation
	res.Cases = append([]model.Case(nil), res.Cases...)
	res.Judges = append([]model.Judge(nil), res.Judges...)
	return res
}
