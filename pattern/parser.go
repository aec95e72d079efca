package pattern

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// record is one decoded line of an image file.
type record struct {
	offset uint16
	data   []byte
}

// Parse parses an image file from the given path.
//
// Example:
//
//	img, err := pattern.Parse("pattern.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an image from any io.Reader.
//
// Example:
//
//	img, err := pattern.ParseReader(strings.NewReader(":0100016698\n"))
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)

	var (
		img     *Image
		data    []byte
		next    int
		lineNum int
	)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if img == nil {
			img = &Image{Offset: rec.offset}
			next = int(rec.offset)
		} else if int(rec.offset) != next {
			return nil, fmt.Errorf("line %d: record at 0x%04X is not contiguous, expected 0x%04X",
				lineNum, rec.offset, next)
		}

		if err := protocol.CheckSpan(rec.offset, len(rec.data)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		data = append(data, rec.data...)
		next += len(rec.data)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if img == nil {
		return nil, fmt.Errorf("no records found: %w", ErrEmpty)
	}

	img.Pattern = Pattern{data: data}
	return img, nil
}

// ParseHex builds a Pattern from a hex string such as "66 99 00 FF".
// Whitespace between bytes is ignored.
func ParseHex(s string) (Pattern, error) {
	clean := strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(clean)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid hex data: %w", err)
	}
	return New(b)
}

// parseRecord parses a single record line.
//
// Record format:
//
//	:[OFFSET_HI][OFFSET_LO][LEN][DATA(LEN)][CHECKSUM]
//
// Example: ":010004669900FFFD"
//
//	Offset: 0x0100 (big-endian)
//	Len: 0x04
//	Data: [0x66, 0x99, 0x00, 0xFF]
//	Checksum: 0xFD
func parseRecord(line string) (*record, error) {
	if line[0] != RecordMarker {
		return nil, fmt.Errorf("record must start with '%c'", RecordMarker)
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	if len(raw) < MinimumRecordBytes {
		return nil, fmt.Errorf("record too short: got %d bytes, minimum is %d", len(raw), MinimumRecordBytes)
	}

	offset := uint16(raw[0])<<8 | uint16(raw[1])
	dataLen := int(raw[2])

	expectedLen := RecordHeaderSize + dataLen + RecordChecksumSize
	if len(raw) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(raw), expectedLen, RecordHeaderSize, dataLen, RecordChecksumSize)
	}

	checksum := raw[len(raw)-1]
	calculated := Checksum(raw[:len(raw)-1])
	if checksum != calculated {
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X", checksum, calculated)
	}

	rec := &record{
		offset: offset,
		data:   make([]byte, dataLen),
	}
	copy(rec.data, raw[RecordHeaderSize:RecordHeaderSize+dataLen])

	return rec, nil
}
