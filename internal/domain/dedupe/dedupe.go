// Package dedupe tracks case numbers already on the docket so a case is
// never filed twice.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Registry records case numbers that are already on the docket.
type Registry interface {
	// SeenAndRecord atomically checks if caseNo was seen and records it if not.
	// Returns true if caseNo was already present.
	SeenAndRecord(ctx context.Context, caseNo string) bool

	// Unrecord removes a case number again. Used when a case was reserved but
	// could not be filed (for example the case source rejected the append).
	Unrecord(ctx context.Context, caseNo string)

	// Seen reports whether caseNo is present without recording it.
	Seen(ctx context.Context, caseNo string) bool

	Size() int64
}

// inMemoryRegistry implements Registry with a map. Case numbers are never
// evicted: cases are never deleted from the docket.
type inMemoryRegistry struct {
	mu       sync.RWMutex
	seen     map[string]struct{}
	caseFold bool
}

// NewInMemoryRegistry creates a new registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{}

	for _, opt := range opts {
		opt(r)
	}

	r.seen = make(map[string]struct{})
	return r
}

func (r *inMemoryRegistry) key(caseNo string) string {
	k := strings.TrimSpace(caseNo)
	if r.caseFold {
		k = strings.ToUpper(k)
	}
	return k
}

// SeenAndRecord atomically checks if caseNo was seen and records it if not.
func (r *inMemoryRegistry) SeenAndRecord(ctx context.Context, caseNo string) bool {
	k := r.key(caseNo)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seen[k]; exists {
		return true
	}
	r.seen[k] = struct{}{}
	return false
}

// Unrecord removes a case number from the registry.
func (r *inMemoryRegistry) Unrecord(ctx context.Context, caseNo string) {
	k := r.key(caseNo)

	r.mu.Lock()
	delete(r.seen, k)
	r.mu.Unlock()
}

// Seen reports whether caseNo is present.
func (r *inMemoryRegistry) Seen(ctx context.Context, caseNo string) bool {
	k := r.key(caseNo)

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seen[k]
	return ok
}

// Size returns the number of recorded case numbers.
func (r *inMemoryRegistry) Size() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.seen))
}
