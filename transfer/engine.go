package transfer

import (
	"errors"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

var (
	// ErrBusy is returned when a transfer is issued while another is in flight.
	ErrBusy = errors.New("transfer: engine busy")

	// ErrClosed is returned when a transfer is issued after Close.
	ErrClosed = errors.New("transfer: engine closed")

	// ErrNilCallback is returned when a transfer is issued without a callback.
	ErrNilCallback = errors.New("transfer: nil callback")
)

// Callback receives the completion event of a transfer.
type Callback func(ev protocol.Event)

// Engine issues asynchronous bus transfers.
//
// Transfer transmits tx (which may be empty) to the device at addr, then
// receives len(rx) bytes into rx (which may be empty) within the same bus
// transaction. A transfer with both empty is an address-only probe.
// done is called exactly once after the transfer finishes, unless Transfer
// returns an error. It may run on any goroutine, including inline before
// Transfer returns. tx and rx must not be touched until done runs.
type Engine interface {
	Transfer(addr protocol.Address, tx, rx []byte, done Callback) error
}

// EngineFunc adapts an ordinary function to the Engine interface.
type EngineFunc func(addr protocol.Address, tx, rx []byte, done Callback) error

// Transfer calls f(addr, tx, rx, done).
func (f EngineFunc) Transfer(addr protocol.Address, tx, rx []byte, done Callback) error {
	return f(addr, tx, rx, done)
}
