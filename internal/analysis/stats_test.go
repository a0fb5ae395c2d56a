package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(nil))
	assert.Equal(t, 0.0, Entropy([]byte{7, 7, 7, 7}))
	assert.InDelta(t, 1.0, Entropy([]byte{0, 1, 0, 1}), 1e-9)
	assert.InDelta(t, 2.0, Entropy([]byte{0, 1, 2, 3}), 1e-9)
}

func TestMostCommon(t *testing.T) {
	b, count, ok := MostCommon([]byte{5, 9, 5, 5, 9})
	require.True(t, ok)
	assert.Equal(t, byte(5), b)
	assert.Equal(t, 3, count)

	_, _, ok = MostCommon(nil)
	assert.False(t, ok)
}

func TestStatsAt(t *testing.T) {
	records := [][]byte{
		{0x21, 0x00},
		{0x21, 0x01},
		{0x21},
		{},
	}

	s, ok := StatsAt(records, 0)
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Unique)
	assert.Equal(t, byte(0x21), s.CommonByte)
	assert.Equal(t, "FIXED: 0x21", s.DistributionSummary())

	s, ok = StatsAt(records, 1)
	require.True(t, ok)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 2, s.Unique)

	_, ok = StatsAt(records, 5)
	assert.False(t, ok)
}

func TestDistributionSummaryVaried(t *testing.T) {
	values := make([][]byte, 32)
	for i := range values {
		values[i] = []byte{byte(i * 7)}
	}
	s, ok := StatsAt(values, 0)
	require.True(t, ok)
	assert.Contains(t, s.DistributionSummary(), "varied")
}

func TestGroupAndFilterByPosition(t *testing.T) {
	records := [][]byte{
		{0x01, 0xaa},
		{0x02, 0xbb},
		{0x01, 0xcc},
		{},
	}

	groups := GroupByPosition(records, 0)
	assert.Len(t, groups, 2)
	assert.Len(t, groups[0x01], 2)
	assert.Len(t, groups[0x02], 1)

	filtered := FilterByPosition(records, 0, 0x01)
	require.Len(t, filtered, 2)
	assert.Equal(t, byte(0xaa), filtered[0][1])
}

func TestDetectBoundaries(t *testing.T) {
	// Two constant header bytes, then four bytes of per-record payload.
	records := make([][]byte, 8)
	for i := range records {
		records[i] = []byte{0x21, 0x00, byte(i), byte(i * 3), byte(i * 7), byte(i * 11)}
	}

	var stats []PositionStats
	for pos := 0; pos < MaxLen(records); pos++ {
		s, ok := StatsAt(records, pos)
		require.True(t, ok)
		stats = append(stats, s)
	}

	bounds := DetectBoundaries(stats)
	require.Len(t, bounds, 2)
	assert.Equal(t, FieldBoundary{Start: 0, End: 1, Fixed: true}, bounds[0])
	assert.Equal(t, FieldBoundary{Start: 2, End: 5, Fixed: false}, bounds[1])

	assert.Empty(t, DetectBoundaries(nil))
}

func TestDetectBoundariesSingleRun(t *testing.T) {
	records := [][]byte{{1, 2}, {1, 2}, {1, 2}}
	var stats []PositionStats
	for pos := 0; pos < 2; pos++ {
		s, ok := StatsAt(records, pos)
		require.True(t, ok)
		stats = append(stats, s)
	}

	bounds := DetectBoundaries(stats)
	require.Len(t, bounds, 1)
	assert.Equal(t, FieldBoundary{Start: 0, End: 1, Fixed: true}, bounds[0])
}

func TestNGrams(t *testing.T) {
	records := [][]byte{
		[]byte("ababab"),
		[]byte("ab"),
	}
	grams := NGrams(records, 2, 2)
	require.NotEmpty(t, grams)
	assert.Equal(t, "ab", grams[0].Gram)
	assert.Equal(t, 4, grams[0].Count)

	none := NGrams(records, 2, 10)
	assert.Empty(t, none)
}
