package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Entropy computes the Shannon entropy, in bits, of a byte sample.
func Entropy(values []byte) float64 {
	if len(values) == 0 {
		return 0
	}

	var freq [256]int
	for _, v := range values {
		freq[v]++
	}

	total := float64(len(values))
	var h float64
	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// MostCommon returns the most frequent byte in the sample and its count.
// ok is false for an empty sample.
func MostCommon(values []byte) (b byte, count int, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	var freq [256]int
	for _, v := range values {
		freq[v]++
	}
	for v, c := range freq {
		if c > count {
			b, count = byte(v), c
		}
	}
	return b, count, true
}

// ByteFrequency returns the value histogram of a sample.
func ByteFrequency(values []byte) map[byte]int {
	freq := make(map[byte]int)
	for _, v := range values {
		freq[v]++
	}
	return freq
}

// PositionStats summarizes one byte position across a record set: how many
// records reach it, how varied the values are, and what dominates.
type PositionStats struct {
	Position   int
	Count      int
	Unique     int
	Entropy    float64
	CommonByte byte
	CommonN    int
	Frequency  map[byte]int
}

// StatsAt collects the stats for a position, or ok=false when no record is
// long enough to have that position.
func StatsAt(records [][]byte, position int) (PositionStats, bool) {
	var values []byte
	for _, r := range records {
		if position < len(r) {
			values = append(values, r[position])
		}
	}
	if len(values) == 0 {
		return PositionStats{}, false
	}

	freq := ByteFrequency(values)
	common, commonN, _ := MostCommon(values)
	return PositionStats{
		Position:   position,
		Count:      len(values),
		Unique:     len(freq),
		Entropy:    Entropy(values),
		CommonByte: common,
		CommonN:    commonN,
		Frequency:  freq,
	}, true
}

// DistributionSummary renders a short human classification of the position:
// fixed byte, small value set, low entropy, or varied.
func (s PositionStats) DistributionSummary() string {
	switch {
	case s.Unique == 1:
		return fmt.Sprintf("FIXED: 0x%02x", s.CommonByte)
	case s.Unique <= 4:
		type pair struct {
			value byte
			count int
		}
		pairs := make([]pair, 0, len(s.Frequency))
		for v, c := range s.Frequency {
			pairs = append(pairs, pair{v, c})
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].count != pairs[j].count {
				return pairs[i].count > pairs[j].count
			}
			return pairs[i].value < pairs[j].value
		})
		parts := make([]string, 0, 4)
		for i, p := range pairs {
			if i == 4 {
				break
			}
			parts = append(parts, fmt.Sprintf("%02x:%d", p.value, p.count))
		}
		return strings.Join(parts, " ")
	case s.Entropy < 2.0:
		return fmt.Sprintf("LOW-ENT (top: 0x%02x %d%%)", s.CommonByte, s.CommonN*100/s.Count)
	default:
		return fmt.Sprintf("varied (%d unique)", s.Unique)
	}
}

// GroupByPosition buckets records by their byte value at position. Records
// too short for the position are dropped.
func GroupByPosition(records [][]byte, position int) map[byte][][]byte {
	groups := make(map[byte][][]byte)
	for _, r := range records {
		if position < len(r) {
			groups[r[position]] = append(groups[r[position]], r)
		}
	}
	return groups
}

// FilterByPosition keeps the records whose byte at position equals value.
func FilterByPosition(records [][]byte, position int, value byte) [][]byte {
	var out [][]byte
	for _, r := range records {
		if position < len(r) && r[position] == value {
			out = append(out, r)
		}
	}
	return out
}

// NGramCount is one n-gram and the number of times it occurs.
type NGramCount struct {
	Gram  string
	Count int
}

// NGrams counts every byte n-gram of the given size across all records and
// returns those seen at least minCount times, most frequent first.
func NGrams(records [][]byte, size, minCount int) []NGramCount {
	counts := make(map[string]int)
	for _, r := range records {
		for i := 0; i+size <= len(r); i++ {
			counts[string(r[i:i+size])] += 1
		}
	}

	var out []NGramCount
	for gram, count := range counts {
		if count >= minCount {
			out = append(out, NGramCount{Gram: gram, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Gram < out[j].Gram
	})
	return out
}

// FieldBoundary is a run of consecutive byte positions that are all
// fixed-like or all variable.
type FieldBoundary struct {
	Start int
	End   int
	Fixed bool
}

// DetectBoundaries segments per-position stats into runs, splitting at every
// transition between fixed (entropy under 1 bit) and variable positions.
// The stats are assumed position-ordered, as StatsAt over a range produces.
func DetectBoundaries(stats []PositionStats) []FieldBoundary {
	if len(stats) == 0 {
		return nil
	}

	var fields []FieldBoundary
	prevFixed := stats[0].Entropy < 1.0
	start := stats[0].Position
	for _, s := range stats[1:] {
		fixed := s.Entropy < 1.0
		if fixed != prevFixed {
			fields = append(fields, FieldBoundary{Start: start, End: s.Position - 1, Fixed: prevFixed})
			start = s.Position
			prevFixed = fixed
		}
	}
	last := stats[len(stats)-1]
	return append(fields, FieldBoundary{Start: start, End: last.Position, Fixed: prevFixed})
}

// MaxLen returns the longest record length in the set.
func MaxLen(records [][]byte) int {
	maxLen := 0
	for _, r := range records {
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	return maxLen
}
