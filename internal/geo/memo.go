package geo

import (
	"delivery-driver-service/internal/domain"
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// CacheKeyer lets items contribute an identity to SortCache fingerprints.
// Items without it are identified by position only.
type CacheKeyer interface {
	CacheKey() string
}

// SortCache memoizes SortWith results keyed on (reference, items).
// An entry is reused only while both inputs hash to the same fingerprint, so
// any change to the reference point or the item list recomputes the order.
// Entries store the permutation, not the items, and are applied to the
// slice passed in. It holds at most capacity entries and evicts the oldest first.
type SortCache[T Locatable] struct {
	calc     *Calculator
	capacity int

	mu      sync.Mutex
	entries map[uint64][]int
	order   []uint64

	hits   atomic.Int64
	misses atomic.Int64
}

func NewSortCache[T Locatable](calc *Calculator, capacity int) *SortCache[T] {
	if calc == nil {
		calc = defaultCalculator
	}
	if capacity < 1 {
		capacity = 1
	}
	return &SortCache[T]{
		calc:     calc,
		capacity: capacity,
		entries:  make(map[uint64][]int, capacity),
	}
}

// Sort behaves like SortWith. The returned slice is never shared with the cache.
func (s *SortCache[T]) Sort(items []T, reference *domain.Coordinates) []T {
	if reference == nil || len(items) == 0 {
		return items
	}

	key := fingerprint(items, *reference)

	s.mu.Lock()
	perm, ok := s.entries[key]
	s.mu.Unlock()
	if ok && len(perm) == len(items) {
		s.hits.Add(1)
		return permute(items, perm)
	}

	s.misses.Add(1)
	perm = sortedPermutation(s.calc, items, *reference)

	s.mu.Lock()
	if _, exists := s.entries[key]; !exists {
		if len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
		}
		s.entries[key] = perm
		s.order = append(s.order, key)
	}
	s.mu.Unlock()

	return permute(items, perm)
}

// Calculator returns the calculator orderings are computed with.
func (s *SortCache[T]) Calculator() *Calculator { return s.calc }

// Len reports the number of cached orderings.
func (s *SortCache[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SortCache[T]) Hits() int64   { return s.hits.Load() }
func (s *SortCache[T]) Misses() int64 { return s.misses.Load() }

func fingerprint[T Locatable](items []T, reference domain.Coordinates) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	writeFloat(reference.Lat)
	writeFloat(reference.Lon)

	binary.LittleEndian.PutUint64(buf[:], uint64(len(items)))
	_, _ = d.Write(buf[:])

	for _, it := range items {
		p := it.Position()
		writeFloat(p.Lat)
		writeFloat(p.Lon)
		if k, ok := any(it).(CacheKeyer); ok {
			_, _ = d.WriteString(k.CacheKey())
		}
		_, _ = d.Write([]byte{0})
	}

	return d.Sum64()
}
