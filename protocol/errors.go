package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAcknowledged signals that the device did not acknowledge its address.
	// Bus implementations return it (possibly wrapped) while an EEPROM is busy
	// with an internal write cycle or when no device is present.
	ErrNotAcknowledged = errors.New("i2c: not acknowledged")

	// ErrInvalidAddress signals an address byte with the R/W bit set.
	ErrInvalidAddress = errors.New("invalid device address")

	// ErrOffsetOverflow signals a span that runs past the two-byte address space.
	ErrOffsetOverflow = errors.New("offset overflow")
)

// TransferError represents a transfer that ended with an event other than
// EventTransferComplete.
type TransferError struct {
	// Operation is the transfer that failed
	Operation string

	// Event is the completion code reported for it
	Event Event
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, e.Event, uint32(e.Event))
}

// Is lets errors.Is(err, ErrNotAcknowledged) match a not-acknowledged event.
func (e *TransferError) Is(target error) bool {
	return target == ErrNotAcknowledged && e.Event.NotAcknowledged()
}
