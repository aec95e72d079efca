package protocol

// Addressing constants for 24-series EEPROMs.
const (
	// DefaultAddress is the 8-bit write-form address of an EEPROM with A2..A0 tied low (0xA0)
	DefaultAddress Address = 0xA0

	// DefaultOffset is the memory offset exercised when none is configured (0x0100)
	DefaultOffset uint16 = 0x0100

	// OffsetSize is the number of address bytes preceding data in every frame
	OffsetSize = 2

	// MaxMemorySize is the largest memory reachable with a two-byte offset
	MaxMemorySize = 1 << 16

	// ReadBit is the R/W bit of the 8-bit address byte
	ReadBit = 0x01
)

// Transfer event codes. The bit values follow the asynchronous I2C HAL of mbed,
// so codes reported by such a HAL can be converted with a plain cast.
const (
	// EventError indicates a generic bus error (arbitration loss, bus fault)
	EventError Event = 1 << 1

	// EventNotAcknowledged indicates that no device acknowledged the address byte
	EventNotAcknowledged Event = 1 << 2

	// EventTransferComplete indicates that every phase of the transfer completed
	EventTransferComplete Event = 1 << 3

	// EventEarlyNACK indicates that the device refused a data byte before the
	// transmit phase finished
	EventEarlyNACK Event = 1 << 4
)

// Default bus parameters.
const (
	// DefaultBusSpeedHz is the fast-mode I2C clock (400 kHz)
	DefaultBusSpeedHz = 400000
)
