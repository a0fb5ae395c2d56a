// Package field models the interpretations available at the cursor: the
// closed set of data types a byte span can be decoded as, and the registry
// of spans the analyst has pinned to a specific type.
package field

import (
	"encoding/binary"
	"fmt"
)

type DataType int

const (
	U8 DataType = iota
	U16Le
	U16Be
	U32Le
	U32Be
	VarInt
	Hex
	Binary
	Ascii
)

// All returns the full enumeration in cyclic order. Next/Prev walk this
// slice, so its order is part of the key-binding contract.
func All() []DataType {
	return []DataType{U8, U16Le, U16Be, U32Le, U32Be, VarInt, Hex, Binary, Ascii}
}

func (d DataType) Name() string {
	switch d {
	case U8:
		return "u8"
	case U16Le:
		return "u16le"
	case U16Be:
		return "u16be"
	case U32Le:
		return "u32le"
	case U32Be:
		return "u32be"
	case VarInt:
		return "varint"
	case Hex:
		return "hex"
	case Binary:
		return "binary"
	case Ascii:
		return "ascii"
	}
	return "u8"
}

func FromName(name string) (DataType, bool) {
	for _, d := range All() {
		if d.Name() == name {
			return d, true
		}
	}
	return U8, false
}

// Width returns the fixed byte width of the type. ok is false for varint,
// the only variable-width type.
func (d DataType) Width() (int, bool) {
	switch d {
	case U16Le, U16Be:
		return 2, true
	case U32Le, U32Be:
		return 4, true
	case VarInt:
		return 0, false
	default:
		return 1, true
	}
}

// WidthOr1 is the width used for field layout math, where varint advances
// one byte at a time.
func (d DataType) WidthOr1() int {
	if w, ok := d.Width(); ok {
		return w
	}
	return 1
}

func (d DataType) Next() DataType {
	all := All()
	for i, t := range all {
		if t == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (d DataType) Prev() DataType {
	all := All()
	for i, t := range all {
		if t == d {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}

// Decode renders the bytes at the start of data as this type. It never
// fails: too few bytes for a fixed-width type yields "".
func (d DataType) Decode(data []byte) string {
	switch d {
	case U8:
		if len(data) >= 1 {
			return fmt.Sprintf("%d", data[0])
		}
	case Hex:
		if len(data) >= 1 {
			return fmt.Sprintf("%02x", data[0])
		}
	case Binary:
		if len(data) >= 1 {
			return fmt.Sprintf("%08b", data[0])
		}
	case Ascii:
		if len(data) >= 1 {
			b := data[0]
			if b > 0x20 && b < 0x7f || b == ' ' {
				return string(rune(b))
			}
			return fmt.Sprintf("\\x%02x", b)
		}
	case U16Le:
		if len(data) >= 2 {
			return fmt.Sprintf("%d", binary.LittleEndian.Uint16(data))
		}
	case U16Be:
		if len(data) >= 2 {
			return fmt.Sprintf("%d", binary.BigEndian.Uint16(data))
		}
	case U32Le:
		if len(data) >= 4 {
			return fmt.Sprintf("%d", binary.LittleEndian.Uint32(data))
		}
	case U32Be:
		if len(data) >= 4 {
			return fmt.Sprintf("%d", binary.BigEndian.Uint32(data))
		}
	case VarInt:
		return decodeVarint(data)
	}
	return ""
}

// decodeVarint reads a little-endian base-128 value: the high bit of each
// byte marks continuation, a clear high bit terminates. Gives up with ""
// once the shift passes 64 bits without a terminator.
func decodeVarint(data []byte) string {
	var value uint64
	shift := uint(0)
	for _, b := range data {
		if shift >= 64 {
			break
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return fmt.Sprintf("%d", value)
		}
		shift += 7
	}
	return ""
}

// DisplayWidth is the column width one field of this type occupies on
// screen, separator included. Render-only.
func (d DataType) DisplayWidth() int {
	switch d {
	case U8:
		return 4
	case Hex:
		return 3
	case Binary:
		return 9
	case U16Le, U16Be:
		return 6
	case U32Le, U32Be, VarInt:
		return 11
	case Ascii:
		return 2
	}
	return 4
}

// FormatWidth is the right-justify width for a decoded value. Render-only.
func (d DataType) FormatWidth() int {
	switch d {
	case U8:
		return 3
	case Hex:
		return 2
	case Binary:
		return 8
	case U16Le, U16Be:
		return 5
	case U32Le, U32Be, VarInt:
		return 10
	case Ascii:
		return 1
	}
	return 3
}
