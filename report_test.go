package offsetalloc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageReport_LargestNeverExceedsTotal(t *testing.T) {
	a, err := New[uint32](Options[uint32]{MaxAllocs: 64})
	require.NoError(t, err)
	require.NoError(t, a.Reset(4096))

	_, allocErr := a.Allocate(100)
	require.NoError(t, allocErr)

	report := a.StorageReport()
	assert.LessOrEqual(t, report.LargestFreeRegion, report.TotalFreeSpace)
}

func TestStorageReport_ZeroBeforeReset(t *testing.T) {
	a, err := New[uint32](Options[uint32]{MaxAllocs: 64})
	require.NoError(t, err)
	assert.Equal(t, StorageReport{}, a.StorageReport())
}

func TestStorageReport_QuirkAtOneRemainingSlot(t *testing.T) {
	// Documented source behavior (spec § 4.6/§ 9, preserved verbatim):
	// once the node pool has exactly one free slot left, StorageReport
	// under-reports as {0, 0} even though free space may remain.
	a, err := New[uint16](Options[uint16]{MaxAllocs: 1})
	require.NoError(t, err)
	require.NoError(t, a.Reset(1024))
	// MaxAllocs=1 gives a 2-slot pool; Reset consumes one for the root
	// free node, leaving exactly one free slot: the quirk condition.
	assert.Equal(t, StorageReport{}, a.StorageReport())
}

func TestStorageReportFull_StringOnlyListsOccupiedBins(t *testing.T) {
	a, err := New[uint32](Options[uint32]{MaxAllocs: 64})
	require.NoError(t, err)
	require.NoError(t, a.Reset(4096))

	s := a.StorageReportFull().String()
	assert.Equal(t, 1, strings.Count(s, "count="))
}

func TestAllocation_Failed(t *testing.T) {
	assert.True(t, Allocation{Offset: NoSpace}.Failed())
	assert.False(t, Allocation{Offset: 0}.Failed())
}
