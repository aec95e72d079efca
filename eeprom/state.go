package eeprom

import (
	"time"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// State is a step of the write/verify sequence.
type State int

// Session states, in order.
const (
	StateIdle State = iota
	StateWriting
	StatePollingAck
	StateReadRequesting
	StateReading
	StateComparing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWriting:
		return "writing"
	case StatePollingAck:
		return "polling"
	case StateReadRequesting:
		return "read-requesting"
	case StateReading:
		return "reading"
	case StateComparing:
		return "comparing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transfers follow this state.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Outcome is the verdict of a finished session.
type Outcome int

// Session outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeMatch
	OutcomeMismatch
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// Result summarises a finished session.
type Result struct {
	Outcome Outcome
	Address protocol.Address
	Offset  uint16

	// Polls is the number of acknowledge probes issued while polling
	Polls int

	// Mismatches lists every differing byte when Outcome is OutcomeMismatch
	Mismatches []protocol.ByteDiff

	Elapsed time.Duration
}
