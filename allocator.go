package offsetalloc

import (
	"fmt"

	"github.com/jpare/offsetalloc/internal/obslog"
)

// Allocator sub-allocates fixed-size offset ranges within [0, size). It
// owns no backing storage: it only tracks which offsets are handed out.
// See the package doc comment for the algorithm; see spec § 5 for the
// concurrency contract (none — single owner, external synchronization
// only).
type Allocator[Idx NodeIndex] struct {
	size        uint32
	freeStorage uint32
	maxAllocs   Idx

	bins       binMap
	binIndices [256]Idx
	pool       *nodePool[Idx]

	stats Stats
	debug bool
}

// New constructs an allocator with zero capacity. No offset can be
// allocated until Reset is called with a nonzero size.
func New[Idx NodeIndex](opts Options[Idx]) (*Allocator[Idx], error) {
	maxAllocs := opts.MaxAllocs
	if maxAllocs == 0 {
		maxAllocs = Idx(defaultMaxAllocs)
	}
	if maxAllocs >= unusedIndex[Idx]() {
		return nil, ErrTooManyAllocs
	}

	a := &Allocator[Idx]{
		maxAllocs: maxAllocs,
		debug:     opts.Debug || obslog.DebugEnv(),
	}
	for i := range a.binIndices {
		a.binIndices[i] = unusedIndex[Idx]()
	}
	return a, nil
}

// Reset repoints the whole range to a single free node covering
// [0, newSize). Calling it with the current size is a no-op. Otherwise
// every bit of bookkeeping is reinitialized, including the free-slot
// stack, which is reloaded so that node index 0 pops first — this
// deterministic slot ordering is part of the contract for reproducible
// tests (spec § 9).
//
// The node pool's backing arrays are reused rather than reallocated
// across resets, since MaxAllocs never changes after New; spec § 9
// explicitly permits this elision.
func (a *Allocator[Idx]) Reset(newSize uint32) error {
	if newSize == 0 {
		return ErrZeroSize
	}
	if newSize == a.size {
		return nil
	}

	a.size = newSize
	a.bins = binMap{}
	for i := range a.binIndices {
		a.binIndices[i] = unusedIndex[Idx]()
	}
	if a.pool == nil {
		a.pool = newNodePool[Idx](a.maxAllocs)
	} else {
		a.pool.reload()
	}
	a.stats = Stats{}

	root := a.insertNodeIntoBin(newSize, 0)
	a.pool.nodes[root].neighborPrev = unusedIndex[Idx]()
	a.pool.nodes[root].neighborNext = unusedIndex[Idx]()
	a.freeStorage = newSize

	if obslog.Enabled {
		obslog.L.Debug("reset", "size", newSize, "root_node", root)
	}
	return nil
}

// Allocate hands out a region of exactly size units, or a failed
// Allocation (Offset == NoSpace) if the pool is exhausted or no free
// region is large enough.
func (a *Allocator[Idx]) Allocate(size uint32) (Allocation, error) {
	if size == 0 {
		return Allocation{}, ErrZeroSize
	}
	if a.size == 0 {
		return Allocation{Offset: NoSpace, Metadata: NoSpace}, nil
	}
	if len(a.pool.freeStack) == 0 {
		if obslog.Enabled {
			obslog.L.Debug("allocate: node pool exhausted", "size", size)
		}
		return Allocation{Offset: NoSpace, Metadata: NoSpace}, nil
	}

	minBin := smallFloatRoundUp(size)
	bin, ok := a.bins.findSmallestFitting(minBin)
	if !ok {
		if obslog.Enabled {
			obslog.L.Debug("allocate: no fitting bin", "size", size, "min_bin", minBin)
		}
		return Allocation{Offset: NoSpace, Metadata: NoSpace}, nil
	}

	nodeIdx := a.binIndices[bin]
	a.removeNodeFromBin(nodeIdx)

	n := &a.pool.nodes[nodeIdx]
	nodeTotal := n.size
	n.size = size
	n.used = true
	a.freeStorage -= size
	a.stats.AllocCalls++

	if nodeTotal > size {
		remainderSize := nodeTotal - size
		remainderOffset := n.offset + size
		oldNext := n.neighborNext

		remIdx := a.insertNodeIntoBin(remainderSize, remainderOffset)
		rem := &a.pool.nodes[remIdx]
		rem.neighborPrev = nodeIdx
		rem.neighborNext = oldNext
		if oldNext != unusedIndex[Idx]() {
			a.pool.nodes[oldNext].neighborPrev = remIdx
		}
		a.pool.nodes[nodeIdx].neighborNext = remIdx
		a.stats.SplitCount++
	}

	offset := a.pool.nodes[nodeIdx].offset
	if obslog.Enabled {
		obslog.L.Debug("allocate", "size", size, "bin", bin, "offset", offset, "node", nodeIdx)
	}
	return Allocation{Offset: offset, Metadata: uint32(nodeIdx)}, nil
}

// Free releases alloc back to the allocator, coalescing with any free
// spatial neighbors. It is a thin wrapper over FreeByIndex, dispatching
// purely on alloc.Metadata (the node index), matching spec § 6.
func (a *Allocator[Idx]) Free(alloc Allocation) {
	a.FreeByIndex(alloc.Metadata)
}

// FreeByIndex releases the node identified by metadata. An invalid
// metadata (NoSpace, out of range, or an uninitialized allocator) is
// silently ignored. Freeing a node that is not currently used is a
// double free: under Options.Debug or OFFSETALLOC_DEBUG it panics: in
// release builds it is silently ignored rather than corrupting the free
// lists (spec § 7/§ 9 document release-mode double free as undefined;
// refusing is a safe undefined behavior).
func (a *Allocator[Idx]) FreeByIndex(metadata uint32) {
	if metadata == NoSpace || a.pool == nil || a.size == 0 {
		return
	}
	idx := Idx(metadata)
	if int(idx) >= len(a.pool.nodes) {
		return
	}

	n := a.pool.nodes[idx]
	a.assertf(n.used, "double free of node %d", idx)
	if !n.used {
		return
	}

	offset, size := n.offset, n.size
	prevIdx, nextIdx := n.neighborPrev, n.neighborNext

	if prevIdx != unusedIndex[Idx]() && !a.pool.nodes[prevIdx].used {
		prevNode := a.pool.nodes[prevIdx]
		offset = prevNode.offset
		size += prevNode.size
		a.removeNodeFromBin(prevIdx)
		a.pool.releaseSlot(prevIdx)
		prevIdx = prevNode.neighborPrev
		a.stats.CoalesceBackward++
	}
	if nextIdx != unusedIndex[Idx]() && !a.pool.nodes[nextIdx].used {
		nextNode := a.pool.nodes[nextIdx]
		size += nextNode.size
		a.removeNodeFromBin(nextIdx)
		a.pool.releaseSlot(nextIdx)
		nextIdx = nextNode.neighborNext
		a.stats.CoalesceForward++
	}

	a.pool.releaseSlot(idx)
	// Merged neighbors were already counted as free; only the released
	// node's own size is new free storage.
	a.freeStorage += n.size

	merged := a.insertNodeIntoBin(size, offset)
	a.pool.nodes[merged].neighborPrev = prevIdx
	a.pool.nodes[merged].neighborNext = nextIdx
	if prevIdx != unusedIndex[Idx]() {
		a.pool.nodes[prevIdx].neighborNext = merged
	}
	if nextIdx != unusedIndex[Idx]() {
		a.pool.nodes[nextIdx].neighborPrev = merged
	}
	a.stats.FreeCalls++

	if obslog.Enabled {
		obslog.L.Debug("free", "node", idx, "merged_node", merged, "offset", offset, "size", size)
	}
}

// AllocationSize returns the live size of alloc, or 0 if it is not a
// valid, currently-used allocation.
func (a *Allocator[Idx]) AllocationSize(alloc Allocation) uint32 {
	if alloc.Metadata == NoSpace || a.pool == nil {
		return 0
	}
	idx := Idx(alloc.Metadata)
	if int(idx) >= len(a.pool.nodes) || !a.pool.nodes[idx].used {
		return 0
	}
	return a.pool.nodes[idx].size
}

// StorageReport summarizes total free space and an underestimate of the
// largest contiguous free region (the representable value of the highest
// non-empty bin, not its true size).
//
// Following spec § 4.6/§ 9 verbatim: when the node pool has exactly one
// free slot remaining, both fields report zero. This is documented
// source behavior, not a bug to "fix" — see DESIGN.md.
func (a *Allocator[Idx]) StorageReport() StorageReport {
	if a.pool == nil || len(a.pool.freeStack) == 1 {
		return StorageReport{}
	}
	var largest uint32
	if bin, ok := a.bins.highestSetBin(); ok {
		largest = smallFloatToUint(bin)
	}
	return StorageReport{TotalFreeSpace: a.freeStorage, LargestFreeRegion: largest}
}

// StorageReportFull returns, for every one of the 256 bins, its
// representable size and how many free regions currently sit in it.
func (a *Allocator[Idx]) StorageReportFull() StorageReportFull {
	var out StorageReportFull
	for b := 0; b < 256; b++ {
		out.FreeRegions[b].Size = smallFloatToUint(uint8(b))
		if a.pool == nil {
			continue
		}
		var count uint32
		for idx := a.binIndices[b]; idx != unusedIndex[Idx](); idx = a.pool.nodes[idx].binNext {
			count++
		}
		out.FreeRegions[b].Count = count
	}
	return out
}

// assertf panics with an invariantError when cond is false and debug
// assertions are enabled (Options.Debug or OFFSETALLOC_DEBUG=1). It is a
// no-op otherwise, matching spec § 7's "debug builds should assert,
// release surfaces nothing" posture.
func (a *Allocator[Idx]) assertf(cond bool, format string, args ...any) {
	if !a.debug || cond {
		return
	}
	panic(&invariantError{what: fmt.Sprintf(format, args...)})
}
