package field

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LockedField pins the half-open byte interval
// [ByteOffset, ByteOffset+ByteLength) to a specific interpretation.
type LockedField struct {
	ByteOffset int
	ByteLength int
	DataType   DataType
}

func (f LockedField) end() int {
	return f.ByteOffset + f.ByteLength
}

// Contains reports whether the interval covers the byte at offset.
func (f LockedField) Contains(offset int) bool {
	return offset >= f.ByteOffset && offset < f.end()
}

// Registry is the ordered set of locked fields. Fields added through Lock
// are guaranteed non-overlapping; a bulk Replace (preset load) may legally
// carry overlaps, which the renderer resolves first-match-wins.
type Registry struct {
	fields []LockedField
}

// Fields returns the locked set sorted by byte offset ascending.
func (r *Registry) Fields() []LockedField {
	return r.fields
}

func (r *Registry) Len() int {
	return len(r.fields)
}

// Lock pins count consecutive fields of dtype starting at byteOffset as one
// combined region. Varint locks one byte per count. recordLen bounds the
// region: locking past the end of the current record is rejected.
func (r *Registry) Lock(byteOffset int, dtype DataType, count, recordLen int) (LockedField, error) {
	if count < 1 {
		count = 1
	}
	byteLen := dtype.WidthOr1() * count

	newField := LockedField{ByteOffset: byteOffset, ByteLength: byteLen, DataType: dtype}
	for _, f := range r.fields {
		if !(newField.end() <= f.ByteOffset || byteOffset >= f.end()) {
			return LockedField{}, fmt.Errorf("cannot lock: overlaps with existing field")
		}
	}

	if byteOffset+byteLen > recordLen {
		avail := recordLen - byteOffset
		if avail < 0 {
			avail = 0
		}
		return LockedField{}, fmt.Errorf("cannot lock: %d bytes needed, only %d available", byteLen, avail)
	}

	r.fields = append(r.fields, newField)
	r.sortByOffset()
	return newField, nil
}

// UnlockAt removes any field whose interval contains byteOffset and reports
// whether a removal occurred.
func (r *Registry) UnlockAt(byteOffset int) bool {
	kept := r.fields[:0]
	removed := false
	for _, f := range r.fields {
		if f.Contains(byteOffset) {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	r.fields = kept
	return removed
}

func (r *Registry) Clear() {
	r.fields = nil
}

// Covering returns the first field (by offset order) containing byteOffset.
func (r *Registry) Covering(byteOffset int) (LockedField, bool) {
	for _, f := range r.fields {
		if f.Contains(byteOffset) {
			return f, true
		}
	}
	return LockedField{}, false
}

// Replace swaps in a whole new field set, as a preset load does.
func (r *Registry) Replace(fields []LockedField) {
	r.fields = append([]LockedField(nil), fields...)
	r.sortByOffset()
}

func (r *Registry) sortByOffset() {
	sort.SliceStable(r.fields, func(i, j int) bool {
		return r.fields[i].ByteOffset < r.fields[j].ByteOffset
	})
}

// Serialize writes the registry in its line-oriented preset form: one
// "offset length typename" line per field, with a comment header and a
// commented detection-rules stub for hand editing.
func (r *Registry) Serialize() string {
	var b strings.Builder
	b.WriteString("# Locked fields: offset length type\n")
	for _, f := range r.fields {
		fmt.Fprintf(&b, "%d %d %s\n", f.ByteOffset, f.ByteLength, f.DataType.Name())
	}
	b.WriteString("\n# Detection rules (uncomment and edit to enable auto-detection)\n")
	b.WriteString("# @rules\n")
	b.WriteString("# byte_equals 0 33\n")
	b.WriteString("# min_length 30\n")
	return b.String()
}

// ParseFields parses the line-oriented preset form. Blank lines, comments,
// and lines with fewer than three tokens are ignored; a "@rules" marker ends
// field parsing. A field line with a bad integer or unknown type name fails
// the whole parse, so a load never partially applies.
func ParseFields(content string) ([]LockedField, error) {
	var fields []LockedField
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "@rules" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}
		offset, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q", parts[0])
		}
		length, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid length %q", parts[1])
		}
		dtype, ok := FromName(parts[2])
		if !ok {
			return nil, fmt.Errorf("invalid type %q", parts[2])
		}
		fields = append(fields, LockedField{ByteOffset: offset, ByteLength: length, DataType: dtype})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].ByteOffset < fields[j].ByteOffset
	})
	return fields, nil
}
