// Package candidate holds the state shared by the scanner and the trading loop:
// the published set of profitable symbols and the per-symbol cool-down table.
package candidate

import (
	"slices"
	"sync/atomic"
	"time"
)

// Snapshot is an immutable published candidate set.
type Snapshot struct {
	// Generation counts publishes, zero is the empty set created at startup.
	Generation uint64
	UpdatedAt  time.Time

	symbols []string
	index   map[string]struct{}
}

func newSnapshot(generation uint64, updatedAt time.Time, symbols []string) *Snapshot {
	sorted := slices.Clone(symbols)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	index := make(map[string]struct{}, len(sorted))
	for _, symbol := range sorted {
		index[symbol] = struct{}{}
	}

	return &Snapshot{
		Generation: generation,
		UpdatedAt:  updatedAt,
		symbols:    sorted,
		index:      index,
	}
}

// Symbols returns a sorted copy of the symbols.
func (s *Snapshot) Symbols() []string {
	return slices.Clone(s.symbols)
}

func (s *Snapshot) Contains(symbol string) bool {
	_, ok := s.index[symbol]

	return ok
}

func (s *Snapshot) Len() int {
	return len(s.symbols)
}

func (s *Snapshot) IsEmpty() bool {
	return len(s.symbols) == 0
}

// Set is the process-wide candidate set. Readers always observe a complete snapshot.
type Set struct {
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewSet creates an empty set at generation zero.
func NewSet() *Set {
	set := &Set{
		current: atomic.Pointer[Snapshot]{},
		now:     time.Now,
	}
	set.current.Store(newSnapshot(0, time.Time{}, nil))

	return set
}

// Snapshot returns the latest published snapshot.
func (s *Set) Snapshot() *Snapshot {
	return s.current.Load()
}

// Publish replaces the whole set and returns the new snapshot.
func (s *Set) Publish(symbols []string) *Snapshot {
	for {
		previous := s.current.Load()
		next := newSnapshot(previous.Generation+1, s.now(), symbols)

		if s.current.CompareAndSwap(previous, next) {
			return next
		}
	}
}
