// Package analysis holds the per-position statistics behind frequency
// coloring and the batch reports: byte histograms, entropy, and grouping.
package analysis

// Tier buckets a byte position by how often its value repeats across the
// record set. TierConstant flags constant-like/magic bytes, TierEntropy
// flags positions that look like payload.
type Tier int

const (
	TierNoData Tier = iota
	TierEntropy
	TierLow
	TierMedium
	TierHigh
	TierConstant
)

// FrequencyTable counts byte values per position over a whole record set.
// It is rebuilt wholesale when frequency mode turns on or the records are
// replaced; there is no incremental maintenance.
type FrequencyTable struct {
	counts  [][256]uint32
	records int
}

// Compute builds a table sized to the longest record.
func Compute(records [][]byte) *FrequencyTable {
	maxLen := 0
	for _, r := range records {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}

	t := &FrequencyTable{
		counts:  make([][256]uint32, maxLen),
		records: len(records),
	}
	for _, r := range records {
		for pos, b := range r {
			t.counts[pos][b]++
		}
	}
	return t
}

// Tier classifies the byte value at a position by the percentage of records
// carrying it there. Out-of-range positions and empty record sets are
// TierNoData.
func (t *FrequencyTable) Tier(pos int, b byte) Tier {
	if t == nil || pos < 0 || pos >= len(t.counts) || t.records == 0 {
		return TierNoData
	}

	pct := int(t.counts[pos][b]) * 100 / t.records
	switch {
	case pct >= 80:
		return TierConstant
	case pct >= 60:
		return TierHigh
	case pct >= 40:
		return TierMedium
	case pct >= 20:
		return TierLow
	default:
		return TierEntropy
	}
}

// Count returns the raw occurrence count for a (position, value) pair.
func (t *FrequencyTable) Count(pos int, b byte) uint32 {
	if t == nil || pos < 0 || pos >= len(t.counts) {
		return 0
	}
	return t.counts[pos][b]
}

// Positions is the table length, i.e. the longest record seen.
func (t *FrequencyTable) Positions() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}
