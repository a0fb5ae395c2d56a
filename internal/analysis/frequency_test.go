package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierBuckets(t *testing.T) {
	// Ten records: byte 0 is 0x7e in 9 of 10, byte 1 is unique per record.
	records := make([][]byte, 10)
	for i := range records {
		records[i] = []byte{0x7e, byte(i), 0x01}
	}
	records[9][0] = 0x00

	table := Compute(records)

	assert.Equal(t, TierConstant, table.Tier(0, 0x7e), "9/10 is the constant tier")
	assert.Equal(t, TierEntropy, table.Tier(1, 0x03), "1/10 is the entropy tier")
	assert.Equal(t, TierConstant, table.Tier(2, 0x01), "10/10 is the constant tier")
}

func TestTierBoundaries(t *testing.T) {
	// Five records let us hit the 80/60/40/20 cut points exactly.
	records := [][]byte{
		{0xaa, 0xbb, 0xcc, 0xdd},
		{0xaa, 0xbb, 0xcc, 0x01},
		{0xaa, 0xbb, 0x02, 0x02},
		{0xaa, 0x03, 0x03, 0x03},
		{0x04, 0x04, 0x04, 0x04},
	}
	table := Compute(records)

	assert.Equal(t, TierConstant, table.Tier(0, 0xaa)) // 80%
	assert.Equal(t, TierHigh, table.Tier(1, 0xbb))     // 60%
	assert.Equal(t, TierMedium, table.Tier(2, 0xcc))   // 40%
	assert.Equal(t, TierLow, table.Tier(3, 0xdd))      // 20%
	assert.Equal(t, TierEntropy, table.Tier(3, 0xff))  // 0%
}

func TestTierNoData(t *testing.T) {
	table := Compute([][]byte{{0x01}})
	assert.Equal(t, TierNoData, table.Tier(5, 0x01), "past the longest record")
	assert.Equal(t, TierNoData, table.Tier(-1, 0x01))

	empty := Compute(nil)
	assert.Equal(t, TierNoData, empty.Tier(0, 0x01))

	var nilTable *FrequencyTable
	assert.Equal(t, TierNoData, nilTable.Tier(0, 0x01))
}

func TestComputeVariableLengths(t *testing.T) {
	records := [][]byte{
		{0x01, 0x02, 0x03},
		{0x01},
	}
	table := Compute(records)
	assert.Equal(t, 3, table.Positions())
	assert.Equal(t, uint32(2), table.Count(0, 0x01))
	assert.Equal(t, uint32(1), table.Count(2, 0x03))
}
