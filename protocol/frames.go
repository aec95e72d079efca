package protocol

import (
	"encoding/binary"
	"fmt"
)

// EncodeOffset writes the big-endian memory offset into buf[0:2].
// buf must be at least OffsetSize bytes long.
func EncodeOffset(buf []byte, offset uint16) {
	binary.BigEndian.PutUint16(buf[:OffsetSize], offset)
}

// DecodeOffset reads the big-endian memory offset from buf[0:2].
func DecodeOffset(buf []byte) (uint16, error) {
	if len(buf) < OffsetSize {
		return 0, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(buf), OffsetSize)
	}
	return binary.BigEndian.Uint16(buf[:OffsetSize]), nil
}

// CheckSpan returns ErrOffsetOverflow if n bytes starting at offset do not fit
// in the two-byte address space.
func CheckSpan(offset uint16, n int) error {
	if n < 0 || int(offset)+n > MaxMemorySize {
		return fmt.Errorf("%w: %d bytes at 0x%04X", ErrOffsetOverflow, n, offset)
	}
	return nil
}

// WriteFrameSize returns the frame length needed to write n data bytes.
func WriteFrameSize(n int) int {
	return OffsetSize + n
}

// BuildWriteFrame fills buf with a write frame for data at offset.
//
// Frame structure:
//
//	[OFFSET_HI][OFFSET_LO][DATA...]
//
// Returns the number of bytes used.
func BuildWriteFrame(buf []byte, offset uint16, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("write frame needs at least one data byte")
	}
	if err := CheckSpan(offset, len(data)); err != nil {
		return 0, err
	}

	size := WriteFrameSize(len(data))
	if len(buf) < size {
		return 0, fmt.Errorf("buffer too small: got %d bytes, need %d", len(buf), size)
	}

	EncodeOffset(buf, offset)
	copy(buf[OffsetSize:size], data)

	return size, nil
}

// BuildReadRequest fills buf with the offset-only frame sent ahead of a read.
//
// Frame structure:
//
//	[OFFSET_HI][OFFSET_LO]
func BuildReadRequest(buf []byte, offset uint16) (int, error) {
	if len(buf) < OffsetSize {
		return 0, fmt.Errorf("buffer too small: got %d bytes, need %d", len(buf), OffsetSize)
	}

	EncodeOffset(buf, offset)

	return OffsetSize, nil
}
