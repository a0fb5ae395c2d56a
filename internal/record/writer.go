package record

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteLength16 writes records in the u16 little-endian length-prefixed
// framing that ReadLength16 reads back.
func WriteLength16(w io.Writer, records [][]byte) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if len(r) > 0xffff {
			return fmt.Errorf("record of %d bytes exceeds the 16-bit length prefix", len(r))
		}
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(r)))
		if _, err := bw.Write(lenBuf[:]); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
		if _, err := bw.Write(r); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return bw.Flush()
}
