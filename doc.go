// Package vecbuf provides a compact generic growable array whose length
// and capacity metadata live inside the element allocation itself.
//
// # Memory Layout
//
// Every vec is backed by a single block obtained from an Allocator. The
// block starts with a two machine-word header and the elements follow
// directly:
//
//	┌────────┬──────────┬───────────────────────────────────┐
//	│ length │ capacity │ elements...                       │
//	└────────┴──────────┴───────────────────────────────────┘
//
// One allocation per vec, no matter how it grows: growing reallocates the
// whole block and rewrites the header at its new address.
//
// # Quick Start
//
//	var v vecbuf.Vec[int] // zero value is ready to use
//	v.Push(1)
//	v.Push(2)
//	v.Push(3)
//
//	for _, x := range v.Data() {
//	    fmt.Println(x)
//	}
//
//	v.Free()
//
// Or configure explicitly:
//
//	v := vecbuf.Make[float64](256,
//	    vecbuf.WithGrowth(vecbuf.GrowthExact),
//	    vecbuf.WithAllocator(vecbuf.NewMmapAllocator()),
//	)
//	defer v.Free()
//
// # Element Types
//
// Elements are stored as flat bit patterns in untyped allocator memory
// that the garbage collector does not scan. T must therefore be
// pointer-free: numeric types, arrays of them, and structs composed of
// them. Types carrying pointers (strings, slices, maps, interfaces,
// pointer fields) are rejected with a panic at the vec's first
// allocation. For variable-length payloads, store fixed-size keys or
// offsets and keep the payloads in a GC-visible structure.
//
// # Growth
//
// When a mutation needs room, the growth policy picks the new capacity:
// GrowthDoubling (default) doubles from max(current, 1) until the request
// fits, giving amortized O(1) appends; GrowthExact allocates exactly the
// requested capacity. Growth relocates the backing block, so element
// pointers, Data views and End sentinels taken before any mutating call
// must not be used after it.
//
// # Failure Model
//
// Allocation failure is fatal. The engine routes it through the FailFunc
// hook (WithFailHook) and panics; there is no partial-success state and
// no recoverable error path. Out-of-contract calls that the engine can
// detect cheaply panic as well (Pop on an empty vec, Insert out of
// range); Delete with an out-of-range index is simply ignored.
//
// # Concurrency
//
// A vec is single-owner and unsynchronized. Mutating the same vec from
// multiple goroutines without external serialization is a data race.
package vecbuf
