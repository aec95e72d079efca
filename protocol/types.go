package protocol

import "fmt"

// Address is an I2C device address in 8-bit write form (R/W bit clear).
// 24-series parts answer at 0xA0..0xAE depending on their A2..A0 pins.
type Address uint8

// SevenBit returns the 7-bit bus address used by most bus APIs.
func (a Address) SevenBit() uint16 {
	return uint16(a >> 1)
}

// Valid reports whether the R/W bit is clear.
func (a Address) Valid() bool {
	return byte(a)&ReadBit == 0
}

// Validate returns ErrInvalidAddress wrapped with the offending value when the
// address is not in write form.
func (a Address) Validate() error {
	if !a.Valid() {
		return fmt.Errorf("%w: 0x%02X has the R/W bit set", ErrInvalidAddress, byte(a))
	}
	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("0x%02X", byte(a))
}

// FromSevenBit converts a 7-bit bus address to the 8-bit write form.
func FromSevenBit(addr uint16) Address {
	return Address(byte(addr&0x7F) << 1)
}

// ByteDiff describes one position where read-back data differs from what was written.
type ByteDiff struct {
	// Index is the position within the pattern
	Index int

	// Offset is the EEPROM memory offset of the byte
	Offset uint16

	// Expected is the byte that was written
	Expected byte

	// Actual is the byte that was read back
	Actual byte
}

func (d ByteDiff) String() string {
	return fmt.Sprintf("offset 0x%04X: written 0x%02X, read 0x%02X", d.Offset, d.Expected, d.Actual)
}
