package offsetalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinList_InsertAtHeadThenRemoveHead(t *testing.T) {
	a := newTestAllocator(t, 8)
	a.pool = newNodePool[uint16](8)

	n1 := a.insertNodeIntoBin(64, 0)
	n2 := a.insertNodeIntoBin(64, 64)

	bin := smallFloatRoundDown(64)
	assert.Equal(t, n2, a.binIndices[bin], "insert is always at the head")

	a.removeNodeFromBin(n2)
	assert.Equal(t, n1, a.binIndices[bin])
	assert.Equal(t, unusedIndex[uint16](), a.pool.nodes[n1].binPrev)
}

func TestBinList_RemoveInteriorNode(t *testing.T) {
	a := newTestAllocator(t, 8)
	a.pool = newNodePool[uint16](8)

	n1 := a.insertNodeIntoBin(64, 0)
	n2 := a.insertNodeIntoBin(64, 64)
	n3 := a.insertNodeIntoBin(64, 128)
	// list is now n3 -> n2 -> n1 (head first)

	a.removeNodeFromBin(n2)

	bin := smallFloatRoundDown(64)
	require.Equal(t, n3, a.binIndices[bin])
	assert.Equal(t, n1, a.pool.nodes[n3].binNext)
	assert.Equal(t, n3, a.pool.nodes[n1].binPrev)
}

func TestBinList_LastRemovalClearsBitmap(t *testing.T) {
	a := newTestAllocator(t, 8)
	a.pool = newNodePool[uint16](8)

	n := a.insertNodeIntoBin(64, 0)
	bin := smallFloatRoundDown(64)
	assert.True(t, a.bins.leafs[bin>>3]&(1<<(bin&7)) != 0)

	a.removeNodeFromBin(n)
	assert.Equal(t, uint8(0), a.bins.leafs[bin>>3])
	assert.True(t, a.bins.isEmpty())
}
