// Package block implements the raw memory layout shared by every vec
// instantiation: a two machine-word header holding (length, capacity),
// followed directly by the element region, all carved out of a single
// allocation. The block slice is the allocation origin, which is exactly
// what must be handed back to the allocator on reallocation and free.
package block

import "unsafe"

// WordSize is the size in bytes of one header field.
const WordSize = unsafe.Sizeof(uintptr(0))

// HeaderSize is the number of bytes preceding the element region.
const HeaderSize = 2 * WordSize

// Size returns the allocation size in bytes for a block holding capacity
// elements of elemSize bytes each, header included.
func Size(capacity int, elemSize uintptr) int {
	return capacity*int(elemSize) + int(HeaderSize)
}

// Len reads the length field. b must be a live block.
func Len(b []byte) int {
	return int(*(*uintptr)(unsafe.Pointer(&b[0])))
}

// Cap reads the capacity field. b must be a live block.
func Cap(b []byte) int {
	return int(*(*uintptr)(unsafe.Pointer(&b[WordSize])))
}

// SetLen writes the length field.
func SetLen(b []byte, n int) {
	*(*uintptr)(unsafe.Pointer(&b[0])) = uintptr(n)
}

// SetCap writes the capacity field.
func SetCap(b []byte, n int) {
	*(*uintptr)(unsafe.Pointer(&b[WordSize])) = uintptr(n)
}

// Elems returns a pointer to element 0, two words past the block start.
// For a capacity of zero-sized elements this is the end of the allocation,
// which is why unsafe.Add is used instead of indexing.
func Elems(b []byte) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(&b[0]), HeaderSize)
}
