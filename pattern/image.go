package pattern

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Record layout constants for the image file format.
const (
	// RecordMarker starts every record line
	RecordMarker = ':'

	// RecordHeaderSize is the size of record metadata (offset + length)
	RecordHeaderSize = 3

	// RecordChecksumSize is the size of the record checksum field
	RecordChecksumSize = 1

	// MinimumRecordBytes is the smallest valid record (one data byte)
	MinimumRecordBytes = RecordHeaderSize + 1 + RecordChecksumSize

	// MaxRecordData is the largest data field a record can carry
	MaxRecordData = 0xFF

	// DefaultRecordSize is the data length FormatImage uses when none is given
	DefaultRecordSize = 16
)

// Image is a pattern together with the memory offset it belongs at.
type Image struct {
	// Offset is the EEPROM memory offset of the first pattern byte
	Offset uint16

	// Pattern is the data to write and verify
	Pattern Pattern
}

// FormatImage writes img in the image file format, recordSize data bytes per record.
// A recordSize outside 1..MaxRecordData falls back to DefaultRecordSize.
func FormatImage(w io.Writer, img *Image, recordSize int) error {
	if img == nil || img.Pattern.IsEmpty() {
		return ErrEmpty
	}
	if err := protocol.CheckSpan(img.Offset, img.Pattern.Len()); err != nil {
		return err
	}
	if recordSize <= 0 || recordSize > MaxRecordData {
		recordSize = DefaultRecordSize
	}

	data := img.Pattern.data
	offset := img.Offset
	for len(data) > 0 {
		n := recordSize
		if n > len(data) {
			n = len(data)
		}

		rec := make([]byte, 0, RecordHeaderSize+n+RecordChecksumSize)
		rec = append(rec, byte(offset>>8), byte(offset), byte(n))
		rec = append(rec, data[:n]...)
		rec = append(rec, Checksum(rec))

		if _, err := fmt.Fprintf(w, "%c%s\n", RecordMarker, strings.ToUpper(hex.EncodeToString(rec))); err != nil {
			return fmt.Errorf("write record at 0x%04X: %w", offset, err)
		}

		offset += uint16(n)
		data = data[n:]
	}

	return nil
}
