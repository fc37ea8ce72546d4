//go:build unix

package vecbuf

import (
	"sync"

	"golang.org/x/sys/unix"
)

// MmapAllocator serves blocks from anonymous memory mappings, keeping
// large vecs off the Go heap and out of the garbage collector's view.
// Reallocate maps a fresh region, copies the surviving prefix and unmaps
// the old region; Free unmaps immediately.
//
// The allocator keeps a registry of live mappings keyed by their start
// address so the unmap length can be recovered from the block slice
// alone. The registry is mutex-protected, so one MmapAllocator may back
// many vecs; each individual vec remains single-owner.
type MmapAllocator struct {
	mu   sync.Mutex
	live map[*byte][]byte
}

// NewMmapAllocator returns a new MmapAllocator with no live mappings.
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{
		live: make(map[*byte][]byte),
	}
}

func (a *MmapAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil
	}

	a.mu.Lock()
	a.live[&data[0]] = data
	a.mu.Unlock()

	return data
}

func (a *MmapAllocator) Reallocate(size int, b []byte) []byte {
	if b == nil {
		return a.Allocate(size)
	}
	if size == len(b) {
		return b
	}

	nb := a.Allocate(size)
	if nb == nil {
		return nil
	}

	copy(nb, b)
	a.Free(b)

	return nb
}

// Free unmaps b. Slices this allocator never handed out are ignored.
func (a *MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}

	a.mu.Lock()
	m, ok := a.live[&b[0]]
	if ok {
		delete(a.live, &b[0])
	}
	a.mu.Unlock()

	if ok {
		_ = unix.Munmap(m)
	}
}

// Live returns the number of mappings currently held.
func (a *MmapAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
