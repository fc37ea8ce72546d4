package vecbuf

// Allocator supplies the raw blocks backing a Vec. The three primitives
// form a family: if one is replaced, all three must be, since Reallocate
// and Free must understand the blocks Allocate hands out.
//
// Implementations signal exhaustion by returning nil; the engine treats
// that as fatal and routes it through the configured failure hook.
type Allocator interface {
	// Allocate returns a zeroed block of exactly size bytes, or nil if the
	// request cannot be satisfied.
	Allocate(size int) []byte

	// Reallocate returns a block of exactly size bytes whose prefix holds
	// as much of b as fits, or nil on failure. A nil b is a request for a
	// fresh allocation.
	Reallocate(size int, b []byte) []byte

	// Free releases a block previously returned by Allocate or Reallocate.
	Free(b []byte)
}

// GoAllocator serves blocks from the Go heap. Free is a no-op: the garbage
// collector reclaims a block once no vec references it.
type GoAllocator struct{}

// NewGoAllocator returns a new GoAllocator.
func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (GoAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}
	return make([]byte, size)
}

func (GoAllocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}
	nb := make([]byte, size)
	copy(nb, b)
	return nb
}

func (GoAllocator) Free(b []byte) {}

// DefaultAllocator backs every vec that was not given an explicit
// allocator via WithAllocator.
var DefaultAllocator Allocator = GoAllocator{}
