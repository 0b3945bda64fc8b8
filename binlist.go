package offsetalloc

// insertNodeIntoBin acquires a fresh node slot describing a free region
// [offset, offset+size) and pushes it onto the head of the bin its size
// quantizes down to (round_down, so the bin's advertised minimum never
// exceeds the region's real size — the "bin found via round_up ⇒ fits"
// guarantee described in spec § 4.1/§ 9 depends on this asymmetry).
//
// The caller is responsible for splicing the returned node into the
// neighbor list; insertNodeIntoBin only manages bin-list and bitmap
// state. It never fails under correct usage: every call site first frees
// or reuses a slot of at least equal count (see Allocate's upfront
// pool-exhaustion check and Free's release-before-reinsert ordering).
func (a *Allocator[Idx]) insertNodeIntoBin(size, offset uint32) Idx {
	idx, ok := a.pool.allocSlot()
	if !ok {
		panic(&invariantError{"node pool exhausted during insertNodeIntoBin"})
	}

	bin := smallFloatRoundDown(size)
	head := a.binIndices[bin]

	a.pool.nodes[idx] = node[Idx]{
		offset:       offset,
		size:         size,
		used:         false,
		binPrev:      unusedIndex[Idx](),
		binNext:      head,
		neighborPrev: unusedIndex[Idx](),
		neighborNext: unusedIndex[Idx](),
	}

	if head != unusedIndex[Idx]() {
		a.pool.nodes[head].binPrev = idx
	} else {
		a.bins.setBin(bin)
	}
	a.binIndices[bin] = idx
	return idx
}

// removeNodeFromBin unlinks a free node from its bin's list, maintaining
// the two-level bitmap when the bin empties. It does not touch the
// neighbor list, and it does not mark the node used or release its slot
// — callers do that afterward according to what they're doing with the
// node (Allocate reuses the slot in place; Free releases it).
func (a *Allocator[Idx]) removeNodeFromBin(idx Idx) {
	n := a.pool.nodes[idx]
	bin := smallFloatRoundDown(n.size)

	if a.binIndices[bin] == idx {
		a.binIndices[bin] = n.binNext
		if n.binNext != unusedIndex[Idx]() {
			a.pool.nodes[n.binNext].binPrev = unusedIndex[Idx]()
		} else {
			a.bins.clearBin(bin)
		}
		return
	}

	a.pool.nodes[n.binPrev].binNext = n.binNext
	if n.binNext != unusedIndex[Idx]() {
		a.pool.nodes[n.binNext].binPrev = n.binPrev
	}
}
