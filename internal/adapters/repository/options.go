package repository

import "time"

// Option configures a TreapStore.
type Option func(*TreapStore)

// WithMetricsUpdateInterval sets how often the per-status docket gauges are
// refreshed in the background.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *TreapStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithoutMetricsUpdater turns the background gauge refresh off. The record
// total is still published on every insert.
func WithoutMetricsUpdater() Option {
	return func(s *TreapStore) {
		s.metricsUpdateInterval = 0
	}
}
