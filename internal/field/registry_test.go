package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlockRoundTrip(t *testing.T) {
	var r Registry
	f, err := r.Lock(3, U16Le, 1, 16)
	require.NoError(t, err)
	assert.Equal(t, LockedField{ByteOffset: 3, ByteLength: 2, DataType: U16Le}, f)

	// Any byte inside the interval removes it.
	assert.True(t, r.UnlockAt(4))
	assert.Empty(t, r.Fields())
	assert.False(t, r.UnlockAt(4))
}

func TestLockOverlapRejected(t *testing.T) {
	var r Registry
	_, err := r.Lock(2, U32Le, 1, 16)
	require.NoError(t, err)

	cases := []struct {
		offset int
		dtype  DataType
	}{
		{2, U8},    // same start
		{5, U8},    // inside
		{0, U32Be}, // straddles start
		{5, U16Le}, // straddles end
	}
	for _, c := range cases {
		_, err := r.Lock(c.offset, c.dtype, 1, 16)
		assert.Error(t, err, "lock at %d should overlap", c.offset)
		assert.Len(t, r.Fields(), 1, "registry must be unchanged after rejection")
	}
}

func TestLockNonOverlappingEitherOrder(t *testing.T) {
	a := LockedField{ByteOffset: 0, ByteLength: 2, DataType: U16Le}
	b := LockedField{ByteOffset: 4, ByteLength: 4, DataType: U32Be}

	for _, order := range [][2]LockedField{{a, b}, {b, a}} {
		var r Registry
		for _, f := range order {
			_, err := r.Lock(f.ByteOffset, f.DataType, 1, 16)
			require.NoError(t, err)
		}
		got := r.Fields()
		require.Len(t, got, 2)
		// Always sorted by offset regardless of insertion order.
		assert.Equal(t, a, got[0])
		assert.Equal(t, b, got[1])
	}
}

func TestLockCountCombinesFields(t *testing.T) {
	var r Registry
	f, err := r.Lock(1, U16Be, 3, 16)
	require.NoError(t, err)
	assert.Equal(t, 6, f.ByteLength)

	var r2 Registry
	f, err = r2.Lock(0, VarInt, 2, 16)
	require.NoError(t, err)
	assert.Equal(t, 2, f.ByteLength, "varint locks one byte per count")
}

func TestLockShortRecord(t *testing.T) {
	var r Registry
	_, err := r.Lock(2, U32Le, 1, 4)
	assert.EqualError(t, err, "cannot lock: 4 bytes needed, only 2 available")
	assert.Empty(t, r.Fields())
}

func TestSerializeParseRoundTrip(t *testing.T) {
	var r Registry
	_, err := r.Lock(0, U8, 1, 16)
	require.NoError(t, err)
	_, err = r.Lock(2, U16Le, 1, 16)
	require.NoError(t, err)

	fields, err := ParseFields(r.Serialize())
	require.NoError(t, err)
	assert.Equal(t, r.Fields(), fields)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields("0 1 u8\n2 2 u16le\n")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, LockedField{ByteOffset: 0, ByteLength: 1, DataType: U8}, fields[0])
	assert.Equal(t, LockedField{ByteOffset: 2, ByteLength: 2, DataType: U16Le}, fields[1])
}

func TestParseFieldsSortsByOffset(t *testing.T) {
	fields, err := ParseFields("8 2 u16be\n0 4 u32le\n")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, 0, fields[0].ByteOffset)
	assert.Equal(t, 8, fields[1].ByteOffset)
}

func TestParseFieldsIgnoresCommentsAndRules(t *testing.T) {
	content := "# Locked fields: offset length type\n" +
		"0 1 u8\n" +
		"\n" +
		"short line\n" +
		"@rules\n" +
		"byte_equals 0 33\n"
	fields, err := ParseFields(content)
	require.NoError(t, err)
	assert.Len(t, fields, 1)
}

func TestParseFieldsAbortsOnBadLine(t *testing.T) {
	_, err := ParseFields("0 1 u8\nx 2 u16le\n")
	assert.Error(t, err)

	_, err = ParseFields("0 1 u8\n2 y u16le\n")
	assert.Error(t, err)

	_, err = ParseFields("0 1 u8\n2 2 nosuch\n")
	assert.Error(t, err)
}
