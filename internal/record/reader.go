// Package record reads framed record files into the [][]byte form the
// exploration engine and the batch reports consume. Records are opaque and
// immutable once read; a reload replaces the whole set.
package record

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	FormatLength16 = "length16"
	FormatLines    = "lines"
)

// ReadFile decodes a record file in the named framing format.
func ReadFile(path, format string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatLength16:
		return ReadLength16(f)
	case FormatLines:
		return ReadHexLines(f)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ReadLength16 reads u16 little-endian length-prefixed records until EOF.
// A zero length is a valid empty record.
func ReadLength16(r io.Reader) ([][]byte, error) {
	br := bufio.NewReader(r)
	var records [][]byte

	for {
		var lenBuf [2]byte
		_, err := io.ReadFull(br, lenBuf[:])
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}

		n := int(binary.LittleEndian.Uint16(lenBuf[:]))
		if n == 0 {
			records = append(records, []byte{})
			continue
		}

		data := make([]byte, n)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		records = append(records, data)
	}
}

// ReadHexLines reads one hex-encoded record per line. Blank lines are
// skipped; a line that is not valid hex fails the whole read.
func ReadHexLines(r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records [][]byte
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		data, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("invalid hex on line %d: %w", lineNo, err)
		}
		records = append(records, data)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return records, nil
}
