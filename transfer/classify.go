package transfer

import (
	"errors"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Classifier maps the error returned by a bus transaction to an event code.
// A nil error must map to protocol.EventTransferComplete.
type Classifier func(err error) protocol.Event

// DefaultClassifier recognises not-acknowledged conditions and reports every
// other failure as a bus error.
func DefaultClassifier(err error) protocol.Event {
	switch {
	case err == nil:
		return protocol.EventTransferComplete
	case errors.Is(err, protocol.ErrNotAcknowledged), isNACKErrno(err):
		return protocol.EventNotAcknowledged
	default:
		return protocol.EventError
	}
}
