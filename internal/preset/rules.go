package preset

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reclens/internal/config"
)

// Rule is one detection predicate from a preset's @rules section.
type Rule struct {
	Kind     string
	Position int
	Value    byte
	Length   int
}

// ParseRule parses a rule line such as "byte_equals 0 33" or
// "min_length 30". Unknown kinds and malformed operands are skipped.
func ParseRule(line string) (Rule, bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Rule{}, false
	}

	switch parts[0] {
	case "byte_equals":
		if len(parts) < 3 {
			return Rule{}, false
		}
		pos, err := strconv.Atoi(parts[1])
		if err != nil {
			return Rule{}, false
		}
		val, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return Rule{}, false
		}
		return Rule{Kind: "byte_equals", Position: pos, Value: byte(val)}, true
	case "min_length", "max_length":
		if len(parts) < 2 {
			return Rule{}, false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return Rule{}, false
		}
		return Rule{Kind: parts[0], Length: n}, true
	default:
		return Rule{}, false
	}
}

func (r Rule) Matches(record []byte) bool {
	switch r.Kind {
	case "byte_equals":
		return r.Position < len(record) && r.Position >= 0 && record[r.Position] == r.Value
	case "min_length":
		return len(record) >= r.Length
	case "max_length":
		return len(record) <= r.Length
	default:
		return false
	}
}

// RuleSet is the detection rules of one named preset.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// ParseRules extracts the @rules section from preset content. Lines before
// the marker belong to the locked-field grammar and are skipped, as are
// comments.
func ParseRules(content string) []Rule {
	var rules []Rule
	inRules := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "@rules" {
			inRules = true
			continue
		}
		if !inRules || strings.HasPrefix(line, "#") {
			continue
		}
		if r, ok := ParseRule(line); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// LoadRuleSets scans the user preset directory for presets carrying a
// non-empty @rules section. A missing directory yields an empty slice.
func (s Store) LoadRuleSets() []RuleSet {
	entries, err := os.ReadDir(s.paths.UserPresetDir)
	if err != nil {
		return nil
	}

	var sets []RuleSet
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), config.PresetExt) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.paths.UserPresetDir, e.Name()))
		if err != nil {
			continue
		}
		rules := ParseRules(string(content))
		if len(rules) == 0 {
			continue
		}
		name := strings.TrimSuffix(e.Name(), config.PresetExt)
		sets = append(sets, RuleSet{Name: name, Rules: rules})
	}
	return sets
}

// Detect samples up to sampleSize records and returns the preset whose
// rules all hold for at least 80% of the sample, preferring the highest
// match count. ok is false when nothing clears the threshold.
func Detect(sets []RuleSet, records [][]byte, sampleSize int) (string, bool) {
	if len(records) == 0 || len(sets) == 0 {
		return "", false
	}

	samples := records
	if len(records) > sampleSize {
		perm := rand.Perm(len(records))
		samples = make([][]byte, sampleSize)
		for i := 0; i < sampleSize; i++ {
			samples[i] = records[perm[i]]
		}
	}

	// Ceiling, so a tiny sample can never pass with zero matches.
	threshold := (len(samples)*80 + 99) / 100
	bestName := ""
	bestCount := -1
	for _, set := range sets {
		if len(set.Rules) == 0 {
			continue
		}
		matches := 0
		for _, record := range samples {
			all := true
			for _, rule := range set.Rules {
				if !rule.Matches(record) {
					all = false
					break
				}
			}
			if all {
				matches++
			}
		}
		if matches >= threshold && matches > bestCount {
			bestName, bestCount = set.Name, matches
		}
	}

	if bestCount < 0 {
		return "", false
	}
	return bestName, true
}
