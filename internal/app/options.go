package service

import (
	repository "github.com/okian/docket/internal/adapters/repository"
	model "github.com/okian/docket/internal/domain/model"
	scoring "github.com/okian/docket/internal/domain/scoring"
	simulation "github.com/okian/docket/internal/domain/simulation"
	"github.com/okian/docket/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSource sets the persistent case source. Without one the docket starts
// empty and added cases live only in memory.
func WithSource(src CaseSource) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithRoster sets the judges cases are allocated to.
func WithRoster(judges []model.Judge) Option {
	return func(s *Service) {
		if len(judges) > 0 {
			s.roster = append([]model.Judge(nil), judges...)
		}
	}
}

// WithCapacity sets the maximum number of cases per judge.
func WithCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithAdjournmentRate sets the probability that a hearing is adjourned.
func WithAdjournmentRate(rate float64) Option {
	return func(s *Service) {
		if rate >= 0 && rate <= 1 {
			s.rate = rate
		}
	}
}

// WithSeed seeds the simulation's random source. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithRandomSource injects the simulation's random source. It takes
// precedence over WithSeed.
func WithRandomSource(src simulation.Source) Option {
	return func(s *Service) {
		s.rng = src
	}
}

// WithWeights sets the scoring weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithStoreOptions passes options to the case store created on Start.
// Repeated calls append.
func WithStoreOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.storeOpts = append(s.storeOpts, opts...)
	}
}

// WithCaseFold makes duplicate detection ignore letter case in case numbers.
func WithCaseFold(enabled bool) Option {
	return func(s *Service) {
		s.caseFold = enabled
	}
}
