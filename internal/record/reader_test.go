package record

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLength16(t *testing.T) {
	input := []byte{
		0x03, 0x00, 0xaa, 0xbb, 0xcc,
		0x00, 0x00,
		0x01, 0x00, 0xff,
	}

	records, err := ReadLength16(bytes.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, records[0])
	assert.Empty(t, records[1])
	assert.Equal(t, []byte{0xff}, records[2])
}

func TestReadLength16Truncated(t *testing.T) {
	// Length claims 4 bytes but only 2 follow.
	input := []byte{0x04, 0x00, 0xaa, 0xbb}
	_, err := ReadLength16(bytes.NewReader(input))
	assert.Error(t, err)
}

func TestReadLength16Empty(t *testing.T) {
	records, err := ReadLength16(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadHexLines(t *testing.T) {
	input := "210005ff\n\n  aabb  \n"
	records, err := ReadHexLines(bytes.NewReader([]byte(input)))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []byte{0x21, 0x00, 0x05, 0xff}, records[0])
	assert.Equal(t, []byte{0xaa, 0xbb}, records[1])
}

func TestReadHexLinesInvalid(t *testing.T) {
	_, err := ReadHexLines(bytes.NewReader([]byte("aabb\nzz\n")))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x02, 0x00, 0x01, 0x02}, 0o644))

	records, err := ReadFile(path, FormatLength16)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []byte{0x01, 0x02}, records[0])

	_, err = ReadFile(path, "bogus")
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "missing.bin"), FormatLength16)
	assert.Error(t, err)
}
