package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	docket "github.com/okian/docket/internal/domain/docket"
	model "github.com/okian/docket/internal/domain/model"
	"github.com/okian/docket/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then insertion sequence ASC. "less" means ranks
// earlier, so in-order traversal yields the docket from most to least urgent.

// scoreFP is a score in hundredths. Scores carry two decimals, so this is exact.
type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	if math.IsNaN(x) {
		return 0
	}
	return scoreFP(math.Round(x * 100))
}

type key struct {
	score scoreFP
	seq   uint64
}

// less returns true if a should appear before b (higher priority first).
func less(a, b key) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.seq < b.seq
}

// treap node
type node struct {
	key   key
	id    string
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// heapPriority derives a well-mixed heap priority from the sequence number
// (splitmix64), which keeps the tree balanced without a random source.
func heapPriority(seq uint64) uint64 {
	z := seq + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, k key) *node {
	if n == nil {
		return &node{key: k, id: id, prio: heapPriority(k.seq), size: 1}
	}
	if less(k, n.key) {
		n.left = insert(n.left, id, k)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, k)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, k key) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.key == k:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, k)
		}
	case less(k, n.key):
		n.left = deleteNode(n.left, k)
	default:
		n.right = deleteNode(n.right, k)
	}
	fix(n)
	return n
}

// position returns the 1-based in-order position of k.
func position(n *node, k key) int {
	pos := 0
	for n != nil {
		switch {
		case n.key == k:
			return pos + nsize(n.left) + 1
		case less(k, n.key):
			n = n.left
		default:
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collect appends up to limit case numbers in priority order.
func collect(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.id)
	}
	collect(n.right, limit, out)
}

// TreapStore keeps cases ordered by priority with O(log n) insert and rank.
type TreapStore struct {
	mu      sync.RWMutex
	root    *node
	byNo    map[string]model.Case
	nextSeq uint64

	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTreapStore constructs a treap store with configuration options and
// starts its background metrics updater, if enabled, which stops with ctx
// or Close.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		byNo:                  make(map[string]model.Case),
		metricsUpdateInterval: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	if s.metricsUpdateInterval > 0 {
		s.startMetricsUpdater(ctx)
	}

	return s
}

// Close stops the background metrics updater.
func (s *TreapStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// Insert implements Store.Insert in O(log n) expected time.
func (s *TreapStore) Insert(ctx context.Context, c model.Case) (model.Case, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	if _, ok := s.byNo[c.CaseNo]; ok {
		s.mu.Unlock()
		metrics.RecordErrorByComponent("repository", "duplicate")
		return model.Case{}, fmt.Errorf("%w: %s", docket.ErrDuplicateCase, c.CaseNo)
	}
	c.Seq = s.nextSeq
	s.nextSeq++
	s.byNo[c.CaseNo] = c
	s.root = insert(s.root, c.CaseNo, key{score: toFixedPoint(c.Score), seq: c.Seq})
	count := len(s.byNo)
	s.mu.Unlock()

	metrics.UpdateRepositoryRecordsTotal(count)
	return c, nil
}

// Update implements Store.Update. The insertion sequence is preserved; a
// changed score moves the case to its new position.
func (s *TreapStore) Update(ctx context.Context, c model.Case) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byNo[c.CaseNo]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("update %s: %w", c.CaseNo, ErrNotFound)
	}
	if old.Disposed() && !c.Disposed() {
		return fmt.Errorf("update %s: %w", c.CaseNo, ErrStatusRegression)
	}

	c.Seq = old.Seq
	if oldScore, newScore := toFixedPoint(old.Score), toFixedPoint(c.Score); oldScore != newScore {
		s.root = deleteNode(s.root, key{score: oldScore, seq: old.Seq})
		s.root = insert(s.root, c.CaseNo, key{score: newScore, seq: c.Seq})
	}
	s.byNo[c.CaseNo] = c
	return nil
}

// Get implements Store.Get.
func (s *TreapStore) Get(ctx context.Context, caseNo string) (model.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byNo[caseNo]
	if !ok {
		return model.Case{}, ErrNotFound
	}
	return c, nil
}

// Rank returns the case and its position in O(log n).
func (s *TreapStore) Rank(ctx context.Context, caseNo string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byNo[caseNo]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	return Entry{Rank: position(s.root, key{score: toFixedPoint(c.Score), seq: c.Seq}), Case: c}, nil
}

// TopN returns the first n cases in priority order.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, min(n, len(s.byNo)))
	collect(s.root, n, &ids)

	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{Rank: i + 1, Case: s.byNo[id]}
	}
	return out, nil
}

// All returns every case in priority order.
func (s *TreapStore) All(ctx context.Context) []model.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.byNo))
	collect(s.root, len(s.byNo), &ids)

	out := make([]model.Case, len(ids))
	for i, id := range ids {
		out[i] = s.byNo[id]
	}
	return out
}

// Count returns the number of cases.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byNo)
}

// CountByStatus returns the number of cases per status.
func (s *TreapStore) CountByStatus(ctx context.Context) map[model.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[model.Status]int{model.StatusPending: 0, model.StatusDisposed: 0}
	for _, c := range s.byNo {
		out[c.Status]++
	}
	return out
}

// startMetricsUpdater starts a background goroutine that publishes docket gauges.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics(ctx)
			}
		}
	}()
}

func (s *TreapStore) updateMetrics(ctx context.Context) {
	for status, n := range s.CountByStatus(ctx) {
		metrics.UpdateCasesByStatus(string(status), n)
	}
	metrics.UpdateRepositoryRecordsTotal(s.Count(ctx))
}
