// Package offsetalloc implements a two-level segregated free-list
// suballocator over an abstract offset range [0, size).
//
// # Overview
//
// The allocator hands out fixed-size integer ranges ("offsets") within a
// virtual address space it does not own or touch; it only tracks which
// ranges are used and which are free. Typical callers are GPU memory
// managers, arena suballocators, and custom heap layers that map opaque,
// externally-owned storage to variable-size requests.
//
// The core data structure has three pieces, leaves first:
//
//   - A SmallFloat codec quantizes a 32-bit size into one of 256 bins
//     using a piecewise-log (3-bit mantissa, 5-bit exponent) encoding.
//   - A two-level bitmap (one 32-bit top word, 32 8-bit leaf words)
//     answers "smallest non-empty bin at or above N" in O(1).
//   - A node pool of fixed capacity backs two interleaved doubly-linked
//     lists per node: a per-bin free list (unordered within the bin) and
//     a spatially-ordered neighbor list used only for coalescing on free.
//
// # Usage
//
//	a, err := offsetalloc.New[uint32](offsetalloc.Options[uint32]{MaxAllocs: 128 * 1024})
//	if err != nil {
//	    // MaxAllocs does not fit the chosen index width
//	}
//	if err := a.Reset(1 << 20); err != nil {
//	    // size was 0
//	}
//	alloc, err := a.Allocate(256)
//	if err != nil {
//	    // size was 0
//	}
//	if alloc.Failed() {
//	    // out of space or out of node-pool capacity
//	}
//	// ... use alloc.Offset ...
//	a.Free(alloc)
//
// # Thread safety
//
// Allocator is a single-owner, non-reentrant data structure. No method is
// safe to call concurrently with any other method, even read-only ones.
// Callers requiring concurrent access must serialize externally.
package offsetalloc
