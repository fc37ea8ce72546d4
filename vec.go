package vecbuf

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/hupe1980/vecbuf/internal/block"
)

// Vec is a growable array of T. Its length and capacity live in a
// two-word header stored in the same allocation as the elements,
// immediately before them, so an entire vec is a single block obtained
// from an Allocator.
//
// The zero value is an empty, unallocated vec ready for use; the first
// mutation that needs room performs the first allocation. Len <= Cap
// holds at all times, and Cap is zero exactly while the vec is
// unallocated.
//
// T must be a flat bit pattern: a type without pointers (no strings,
// slices, maps, interfaces or pointer fields). Element storage is untyped
// allocator memory that the garbage collector does not scan, so a
// pointer held only by a vec would not keep its target alive. The first
// allocation panics on a pointer-containing T.
//
// Any mutating method may relocate the backing block. Element pointers,
// Data views and End sentinels obtained before a mutation must not be
// used afterwards.
//
// A vec has a single logical owner. Concurrent mutation from multiple
// goroutines is a data race; callers must serialize access externally.
type Vec[T any] struct {
	b   []byte
	cfg config
}

// New returns an empty vec configured by opts. With no options it is
// equivalent to the zero value.
func New[T any](opts ...Option) *Vec[T] {
	v := &Vec[T]{}
	for _, opt := range opts {
		opt(&v.cfg)
	}
	return v
}

// Make returns a vec with room for at least capacity elements already
// allocated. Helps avoid reallocations during early growth.
func Make[T any](capacity int, opts ...Option) *Vec[T] {
	v := New[T](opts...)
	v.Grow(capacity)
	return v
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// assertFlat panics when T contains pointers. Elements live in untyped
// allocator blocks the garbage collector does not scan, so a heap object
// whose only reference sits inside a vec would be collected while still
// reachable through it. Checked once per fresh allocation, off the hot
// push path.
func assertFlat[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		panic(fmt.Sprintf("vecbuf: element type %s contains pointers; elements must be flat bit patterns", t))
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, strings, slices, maps, chans, funcs, interfaces.
		return true
	}
}

func (v *Vec[T]) allocator() Allocator {
	if v.cfg.alloc != nil {
		return v.cfg.alloc
	}
	return DefaultAllocator
}

func (v *Vec[T]) fail(msg string) {
	if v.cfg.onFail != nil {
		v.cfg.onFail(msg)
	}
	// No safe way to continue with a request that couldn't be satisfied.
	panic(msg)
}

// slots returns the full capacity as a slice; only the first Len entries
// hold live elements. The vec must be allocated.
func (v *Vec[T]) slots() []T {
	return unsafe.Slice((*T)(block.Elems(v.b)), block.Cap(v.b))
}

// realloc moves the vec to a block of the given capacity and rewrites
// both header fields. A nil current block means a fresh allocation.
func (v *Vec[T]) realloc(capacity, length int) {
	if v.b == nil {
		assertFlat[T]()
	}
	size := block.Size(capacity, elemSize[T]())
	nb := v.allocator().Reallocate(size, v.b)
	if nb == nil {
		v.fail(fmt.Sprintf("vecbuf: allocation of %d bytes failed", size))
	}
	v.b = nb
	block.SetLen(nb, length)
	block.SetCap(nb, capacity)
}

// grow ensures capacity for at least request elements. No-op when the
// current capacity already suffices.
func (v *Vec[T]) grow(request int) {
	cur := v.Cap()
	if cur >= request {
		return
	}
	next := v.cfg.growth.next(cur, request)
	if l := v.cfg.logger; l != nil {
		l.Debug("vec grow", "from", cur, "to", next, "request", request)
	}
	v.realloc(next, v.Len())
}

// Grow ensures the vec has capacity for at least n elements. No-op when
// the capacity already suffices; never shrinks.
func (v *Vec[T]) Grow(n int) {
	v.grow(n)
}

// Push appends x to the end of the vec, growing if necessary.
// Amortized O(1) under the doubling policy.
func (v *Vec[T]) Push(x T) {
	n := v.Len()
	if v.Cap() <= n {
		v.grow(n + 1)
	}
	v.slots()[n] = x
	block.SetLen(v.b, n+1)
}

// Pop removes and returns the last element. O(1); capacity is kept and
// the vacated slot's bit pattern is left in place. Panics on an empty
// vec.
func (v *Vec[T]) Pop() T {
	n := v.Len()
	if n == 0 {
		panic("vecbuf: Pop on empty vec")
	}
	x := v.slots()[n-1]
	block.SetLen(v.b, n-1)
	return x
}

// Insert places x at index i, shifting elements [i, Len) one slot
// forward. O(n). Panics unless 0 <= i <= Len.
func (v *Vec[T]) Insert(i int, x T) {
	n := v.Len()
	if i < 0 || i > n {
		panic(fmt.Sprintf("vecbuf: Insert index %d out of range [0, %d]", i, n))
	}
	v.grow(n + 1)
	s := v.slots()
	copy(s[i+1:n+1], s[i:n])
	s[i] = x
	block.SetLen(v.b, n+1)
}

// InsertBefore inserts x just before the element p points to. p must
// point into this vec. No-op when the vec is unallocated or p is nil.
func (v *Vec[T]) InsertBefore(p *T, x T) {
	if v.b == nil || p == nil {
		return
	}
	v.Insert(v.indexOf(p), x)
}

// Delete removes the element at index i, shifting later elements back
// one slot. O(n). Indices outside [0, Len) are ignored.
func (v *Vec[T]) Delete(i int) {
	n := v.Len()
	if i < 0 || i >= n {
		return
	}
	s := v.slots()
	copy(s[i:n-1], s[i+1:n])
	block.SetLen(v.b, n-1)
}

// DeletePtr removes the element p points to. p must point into this vec.
// No-op when the vec is unallocated or p is nil.
func (v *Vec[T]) DeletePtr(p *T) {
	if v.b == nil || p == nil {
		return
	}
	v.Delete(v.indexOf(p))
}

// indexOf recovers the index of an element pointer. Zero-sized element
// types carry no address information, so index 0 is the only answer.
func (v *Vec[T]) indexOf(p *T) int {
	es := elemSize[T]()
	if es == 0 {
		return 0
	}
	base := uintptr(block.Elems(v.b))
	return int((uintptr(unsafe.Pointer(p)) - base) / es)
}

// Trim reallocates the vec down to exactly its length, releasing slack
// capacity. Length never changes. A vec trimmed at length zero returns
// to the unallocated state.
func (v *Vec[T]) Trim() {
	if v.b == nil {
		return
	}
	n := block.Len(v.b)
	if block.Cap(v.b) <= n {
		return
	}
	if n == 0 {
		v.Free()
		return
	}
	if l := v.cfg.logger; l != nil {
		l.Debug("vec trim", "from", block.Cap(v.b), "to", n)
	}
	v.realloc(n, n)
}

// Clear resets the length to zero. Capacity and the bit patterns of the
// dead slots are untouched; subsequent pushes reuse the allocation.
func (v *Vec[T]) Clear() {
	if v.b != nil {
		block.SetLen(v.b, 0)
	}
}

// Free releases the backing block and resets the vec to the unallocated
// state. The vec may be reused afterwards. Blocks must be released
// through Free so the allocator sees the same slice it handed out.
func (v *Vec[T]) Free() {
	if v.b == nil {
		return
	}
	if l := v.cfg.logger; l != nil {
		l.Debug("vec free", "len", block.Len(v.b), "cap", block.Cap(v.b))
	}
	v.allocator().Free(v.b)
	v.b = nil
}
