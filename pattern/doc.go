// Package pattern provides the ground-truth byte pattern written to an EEPROM
// and read back for verification, plus a hex image file format for loading one.
//
// # Image File Format
//
// An image file holds one record per line. Blank lines and lines starting
// with '#' are ignored. Every record is a ':' followed by hex-encoded bytes:
//
//	:[OFFSET_HI][OFFSET_LO][LEN][DATA(LEN)][CHECKSUM]
//
// The offset is big-endian, matching the EEPROM's own addressing. The checksum
// is the 2's complement of the byte sum of everything before it, so the sum of
// all record bytes is zero.
//
// Example record:
//
//	:010004669900FFFD
//	  0100 = memory offset 0x0100
//	  04 = 4 data bytes
//	  669900FF = data
//	  FD = checksum
//
// Records must be contiguous: each starts where the previous ended. The first
// record's offset becomes the image offset.
//
// # Usage
//
// Use the built-in pattern:
//
//	p := pattern.Default()
//
// Load an image from disk:
//
//	img, err := pattern.Parse("pattern.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes at 0x%04X\n", img.Pattern.Len(), img.Offset)
//
// # Error Handling
//
// Parse returns detailed errors with line numbers for:
//   - Missing ':' record marker
//   - Invalid hex encoding
//   - Length field mismatches
//   - Checksum mismatches
//   - Gaps or overlaps between records
//   - Images running past the two-byte address space
package pattern
