package protocol

import (
	"fmt"
	"strings"
)

// Event is the completion code delivered when a transfer finishes.
// It carries no data and is only ever read.
type Event uint32

// Acknowledged reports whether the transfer completed and the device acknowledged.
func (e Event) Acknowledged() bool {
	return e == EventTransferComplete
}

// NotAcknowledged reports whether the device did not answer its address.
// During an acknowledge poll this means the internal write cycle is still running.
func (e Event) NotAcknowledged() bool {
	return e == EventNotAcknowledged
}

// Recognized reports whether the event is one a session acts on.
// Everything else is treated as a transport fault.
func (e Event) Recognized() bool {
	return e.Acknowledged() || e.NotAcknowledged()
}

func (e Event) String() string {
	if e == 0 {
		return "none"
	}

	var names []string
	rest := e
	for _, known := range []Event{EventError, EventNotAcknowledged, EventTransferComplete, EventEarlyNACK} {
		if rest&known != 0 {
			names = append(names, getEventName(known))
			rest &^= known
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("unknown(0x%X)", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// getEventName returns a human-readable name for a single event bit.
func getEventName(e Event) string {
	switch e {
	case EventError:
		return "bus error"
	case EventNotAcknowledged:
		return "not acknowledged"
	case EventTransferComplete:
		return "transfer complete"
	case EventEarlyNACK:
		return "early NACK"
	default:
		return fmt.Sprintf("unknown(0x%X)", uint32(e))
	}
}
