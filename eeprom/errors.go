package eeprom

import (
	"errors"
	"fmt"
	"time"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrNotDone is returned by Result while the session is still running.
	ErrNotDone = errors.New("session not finished")

	// ErrDeviceTimeout matches DeviceTimeoutError.
	ErrDeviceTimeout = errors.New("device did not acknowledge in time")

	// ErrDataMismatch matches MismatchError.
	ErrDataMismatch = errors.New("read data does not match written data")

	// ErrTransportFault matches TransportFaultError.
	ErrTransportFault = errors.New("transport fault")

	// ErrUnexpectedCallback matches UnexpectedCallbackError.
	ErrUnexpectedCallback = errors.New("unexpected transfer callback")
)

// DeviceTimeoutError indicates that acknowledge polling exceeded its bound.
type DeviceTimeoutError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *DeviceTimeoutError) Error() string {
	return fmt.Sprintf("device did not acknowledge after %d probes (%s)", e.Attempts, e.Elapsed)
}

func (e *DeviceTimeoutError) Is(target error) bool {
	return target == ErrDeviceTimeout
}

// MismatchError indicates that read-back data differs from the written pattern.
type MismatchError struct {
	Offset uint16
	Length int
	Diffs  []protocol.ByteDiff
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("read data doesn't match written data: %d of %d bytes differ at 0x%04X",
		len(e.Diffs), e.Length, e.Offset)
	if len(e.Diffs) > 0 {
		msg += " (first: " + e.Diffs[0].String() + ")"
	}
	return msg
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrDataMismatch
}

// TransportFaultError indicates a transfer that ended with an event the
// current state cannot act on.
type TransportFaultError struct {
	State State
	Event protocol.Event
}

func (e *TransportFaultError) Error() string {
	return fmt.Sprintf("transport fault while %s: %s (0x%02X)", e.State, e.Event, uint32(e.Event))
}

func (e *TransportFaultError) Is(target error) bool {
	return target == ErrTransportFault
}

// Unwrap exposes the event as a protocol.TransferError.
func (e *TransportFaultError) Unwrap() error {
	return &protocol.TransferError{Operation: e.State.String(), Event: e.Event}
}

// UnexpectedCallbackError indicates a completion for a transfer that is no
// longer current, such as a duplicate or late callback.
type UnexpectedCallbackError struct {
	State   State
	Seq     uint64
	Current uint64
}

func (e *UnexpectedCallbackError) Error() string {
	return fmt.Sprintf("unexpected callback while %s: transfer #%d completed, #%d is current",
		e.State, e.Seq, e.Current)
}

func (e *UnexpectedCallbackError) Is(target error) bool {
	return target == ErrUnexpectedCallback
}
