package dedupe

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithCaseFold makes case-number comparison case-insensitive, so "cr-12"
// and "CR-12" are treated as the same case.
func WithCaseFold(enabled bool) Option {
	return func(r *inMemoryRegistry) {
		r.caseFold = enabled
	}
}
