// Package testutil provides instrumented allocators and deterministic
// randomness for exercising vecbuf in tests.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/vecbuf"
)

// Stats is a snapshot of CountingAllocator activity.
type Stats struct {
	Allocs       uint64 // fresh blocks handed out
	Reallocs     uint64 // reallocations of a live block
	Frees        uint64 // successful frees
	DoubleFrees  uint64 // frees of a block already freed or moved
	ForeignFrees uint64 // frees of a block this allocator never produced
	LiveBlocks   int    // blocks currently outstanding
	LiveBytes    uint64 // bytes currently outstanding
}

// CountingAllocator wraps another Allocator and tracks every block it
// hands out. Tests use it to assert that every block is eventually freed
// exactly once, and to count reallocations caused by growth.
type CountingAllocator struct {
	inner vecbuf.Allocator
	mu    sync.Mutex
	live  map[*byte]int
	ever  map[*byte]struct{}
	stats Stats
}

// NewCountingAllocator wraps inner, defaulting to the Go heap allocator
// when inner is nil.
func NewCountingAllocator(inner vecbuf.Allocator) *CountingAllocator {
	if inner == nil {
		inner = vecbuf.GoAllocator{}
	}
	return &CountingAllocator{
		inner: inner,
		live:  make(map[*byte]int),
		ever:  make(map[*byte]struct{}),
	}
}

func (a *CountingAllocator) Allocate(size int) []byte {
	b := a.inner.Allocate(size)
	if b == nil {
		return nil
	}

	a.mu.Lock()
	a.live[&b[0]] = size
	a.ever[&b[0]] = struct{}{}
	a.stats.Allocs++
	a.stats.LiveBytes += uint64(size)
	a.mu.Unlock()

	return b
}

func (a *CountingAllocator) Reallocate(size int, b []byte) []byte {
	if b == nil {
		return a.Allocate(size)
	}

	nb := a.inner.Reallocate(size, b)
	if nb == nil {
		return nil
	}

	a.mu.Lock()
	if old, ok := a.live[&b[0]]; ok {
		delete(a.live, &b[0])
		a.stats.LiveBytes -= uint64(old)
	}
	a.live[&nb[0]] = size
	a.ever[&nb[0]] = struct{}{}
	a.stats.Reallocs++
	a.stats.LiveBytes += uint64(size)
	a.mu.Unlock()

	return nb
}

func (a *CountingAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}

	a.mu.Lock()
	size, ok := a.live[&b[0]]
	if ok {
		delete(a.live, &b[0])
		a.stats.Frees++
		a.stats.LiveBytes -= uint64(size)
	} else if _, seen := a.ever[&b[0]]; seen {
		a.stats.DoubleFrees++
	} else {
		a.stats.ForeignFrees++
	}
	a.mu.Unlock()

	if ok {
		a.inner.Free(b)
	}
}

// Grows returns the total number of block movements (fresh allocations
// plus reallocations) so far.
func (a *CountingAllocator) Grows() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.Allocs + a.stats.Reallocs
}

// Stats returns a snapshot of the allocator's counters.
func (a *CountingAllocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.stats
	s.LiveBlocks = len(a.live)
	return s
}

// FailingAllocator refuses every request after the first n successful
// block movements. Use it to drive the allocation failure path.
type FailingAllocator struct {
	inner vecbuf.Allocator
	left  int
}

// NewFailingAllocator returns an allocator that satisfies the first n
// allocation or reallocation requests and fails all later ones.
func NewFailingAllocator(n int) *FailingAllocator {
	return &FailingAllocator{
		inner: vecbuf.GoAllocator{},
		left:  n,
	}
}

func (a *FailingAllocator) Allocate(size int) []byte {
	if a.left <= 0 {
		return nil
	}
	a.left--
	return a.inner.Allocate(size)
}

func (a *FailingAllocator) Reallocate(size int, b []byte) []byte {
	if a.left <= 0 {
		return nil
	}
	a.left--
	return a.inner.Reallocate(size, b)
}

func (a *FailingAllocator) Free(b []byte) {
	a.inner.Free(b)
}

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Int returns a pseudo-random int.
func (r *RNG) Int() int {
	return r.rand.Int()
}
