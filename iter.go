package vecbuf

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/vecbuf/internal/block"
)

// Len returns the number of live elements. Zero for an unallocated vec.
func (v *Vec[T]) Len() int {
	if v.b == nil {
		return 0
	}
	return block.Len(v.b)
}

// Cap returns the number of allocated element slots. Zero for an
// unallocated vec.
func (v *Vec[T]) Cap() int {
	if v.b == nil {
		return 0
	}
	return block.Cap(v.b)
}

// Data returns the live elements as a slice sharing the vec's storage.
// Writes through the slice are visible in the vec. The view is
// invalidated by any subsequent mutating call.
func (v *Vec[T]) Data() []T {
	if v.b == nil {
		return nil
	}
	return unsafe.Slice((*T)(block.Elems(v.b)), block.Len(v.b))
}

// Last returns a pointer to the final element, or nil when the vec is
// empty or unallocated.
func (v *Vec[T]) Last() *T {
	n := v.Len()
	if n == 0 {
		return nil
	}
	return &v.slots()[n-1]
}

// End returns the one-past-last sentinel, or nil when the vec is
// unallocated. The sentinel is a loop bound, never a dereferenceable
// element. Capture it once before iterating; it is recomputed from the
// header on every call.
func (v *Vec[T]) End() *T {
	if v.b == nil {
		return nil
	}
	return (*T)(unsafe.Add(block.Elems(v.b), uintptr(block.Len(v.b))*elemSize[T]()))
}

// Each calls fn with every live element in index order.
func (v *Vec[T]) Each(fn func(T)) {
	for _, x := range v.Data() {
		fn(x)
	}
}

// EachPtr calls fn with a pointer to every live element in index order.
// The pointers are valid until the next mutating call.
func (v *Vec[T]) EachPtr(fn func(*T)) {
	s := v.Data()
	for i := range s {
		fn(&s[i])
	}
}

func (v *Vec[T]) String() string {
	return fmt.Sprintf("Vec{len: %d, cap: %d}", v.Len(), v.Cap())
}
