package eeprom

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moffa90/go-i2ceeprom/pattern"
	"github.com/moffa90/go-i2ceeprom/protocol"
	"github.com/moffa90/go-i2ceeprom/transfer"
)

// Session writes a pattern to an EEPROM, waits for the write cycle by
// acknowledge polling, reads the pattern back and compares it.
//
// All state changes happen inside transfer completion callbacks. At most one
// transfer is outstanding at any time, so the transmit and receive buffers are
// never shared between transfers. A Session runs once.
type Session struct {
	engine   transfer.Engine
	config   Config
	expected []byte

	// tx holds [offset][pattern] for the write and [offset] for the read request.
	tx []byte
	rx []byte

	mu        sync.Mutex
	state     State
	seq       uint64
	polls     int
	started   time.Time
	pollStart time.Time
	result    Result
	err       error
	pending   []Progress
	done      chan struct{}

	// issuing is set while engine.Transfer runs; a completion arriving then
	// parks its follow-up transfer in queued for the issuing loop.
	issuing bool
	queued  *step
}

// step is a transfer to issue once the lock is released.
type step struct {
	seq uint64
	tx  []byte
	rx  []byte
}

// New creates a session that verifies p on the device reached through engine.
// All buffers are allocated here and reused for the lifetime of the session.
//
// Example:
//
//	s, err := eeprom.New(engine, pattern.Default(), eeprom.WithOffset(0x0100))
func New(engine transfer.Engine, p pattern.Pattern, opts ...Option) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if p.IsEmpty() {
		return nil, pattern.ErrEmpty
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Address.Validate(); err != nil {
		return nil, err
	}
	if err := protocol.CheckSpan(cfg.Offset, p.Len()); err != nil {
		return nil, err
	}

	return &Session{
		engine:   engine,
		config:   cfg,
		expected: p.Bytes(),
		tx:       make([]byte, protocol.WriteFrameSize(p.Len())),
		rx:       make([]byte, p.Len()),
		done:     make(chan struct{}),
	}, nil
}

// Start issues the write transfer and returns without waiting for it.
// It returns ErrAlreadyStarted when called more than once, or the engine's
// error if a transfer could not be issued (the session is then failed).
// With an engine that completes inline, Start drives the whole sequence.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	s.started = s.config.Clock()
	s.logInfo("starting transfer test",
		"addr", s.config.Address.String(),
		"offset", fmt.Sprintf("0x%04X", s.config.Offset),
		"length", len(s.expected),
	)

	clear(s.tx)
	clear(s.rx)
	// span and buffer size were checked by New
	_, _ = protocol.BuildWriteFrame(s.tx, s.config.Offset, s.expected)

	s.enter(StateWriting, 0)
	next := s.prepare(s.tx, nil)
	reports := s.takePending()
	s.mu.Unlock()

	s.deliver(reports, false)
	return s.issue(next)
}

// Run starts the session and waits for it to finish.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if err := s.Start(); errors.Is(err, ErrAlreadyStarted) {
		return Result{}, err
	}
	return s.Wait(ctx)
}

// Wait blocks until the session finishes or ctx is done.
// A Match yields a nil error; a Mismatch yields a *MismatchError alongside the result.
// Ending ctx stops the wait only; the session keeps running.
func (s *Session) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		return s.Result()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Done returns a channel closed once the session reaches a terminal state
// and the final progress report has been delivered.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result returns the outcome of a finished session, or ErrNotDone.
func (s *Session) Result() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Terminal() {
		return Result{}, ErrNotDone
	}
	return s.result, s.err
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// issue hands transfers to the engine until one is left outstanding.
// Follow-ups of transfers that complete before Transfer returns are issued
// from this loop, so the stack stays flat however long the device polls.
// A refused transfer fails the session.
func (s *Session) issue(st step) error {
	for {
		s.mu.Lock()
		s.issuing = true
		s.mu.Unlock()

		seq := st.seq
		err := s.engine.Transfer(s.config.Address, st.tx, st.rx, func(ev protocol.Event) {
			s.complete(seq, ev)
		})

		s.mu.Lock()
		s.issuing = false
		next := s.queued
		s.queued = nil

		if err != nil {
			finished := false
			if s.seq == st.seq && !s.state.Terminal() {
				finished = s.fail(fmt.Errorf("%s: issue transfer: %w", s.state, err))
			}
			reports := s.takePending()
			s.mu.Unlock()

			s.deliver(reports, finished)
			return err
		}
		s.mu.Unlock()

		if next == nil {
			return nil
		}
		st = *next
	}
}

// complete is the single dispatch point for every transfer completion.
func (s *Session) complete(seq uint64, ev protocol.Event) {
	s.mu.Lock()
	next, finished := s.advance(seq, ev)
	reports := s.takePending()
	if next != nil && s.issuing {
		s.queued = next
		next = nil
	}
	s.mu.Unlock()

	s.deliver(reports, finished)
	if next != nil {
		_ = s.issue(*next)
	}
}

// advance applies one completion event. Called with s.mu held.
func (s *Session) advance(seq uint64, ev protocol.Event) (*step, bool) {
	if s.state.Terminal() {
		s.logDebug("ignoring callback after session end",
			"state", s.state.String(), "transfer", seq, "event", ev.String())
		return nil, false
	}

	if seq != s.seq {
		return nil, s.fail(&UnexpectedCallbackError{State: s.state, Seq: seq, Current: s.seq})
	}

	switch s.state {
	case StateWriting:
		return s.onWriteDone(ev)
	case StatePollingAck:
		return s.onProbeDone(ev)
	case StateReadRequesting:
		return s.onReadyConfirmed(ev)
	case StateReading:
		return s.onReadDone(ev)
	default:
		return nil, s.fail(&UnexpectedCallbackError{State: s.state, Seq: seq, Current: s.seq})
	}
}

// onWriteDone starts acknowledge polling. The write's own event is not
// checked: a write that failed shows up in the comparison.
func (s *Session) onWriteDone(ev protocol.Event) (*step, bool) {
	s.logInfo("writing done", "event", ev.String())

	s.pollStart = s.config.Clock()
	s.polls = 1
	s.enter(StatePollingAck, ev)

	next := s.prepare(nil, nil)
	return &next, false
}

// onProbeDone handles one acknowledge probe: proceed on ACK, probe again on NACK.
func (s *Session) onProbeDone(ev protocol.Event) (*step, bool) {
	switch {
	case ev.Acknowledged():
		s.logDebug("device acknowledged", "polls", s.polls)

		s.enter(StateReadRequesting, ev)
		_, _ = protocol.BuildReadRequest(s.tx, s.config.Offset)

		next := s.prepare(nil, nil)
		return &next, false

	case ev.NotAcknowledged():
		if err := s.checkPollBound(); err != nil {
			return nil, s.fail(err)
		}

		s.polls++
		s.notify(StatePollingAck, ev)

		next := s.prepare(nil, nil)
		return &next, false

	default:
		return nil, s.fail(&TransportFaultError{State: StatePollingAck, Event: ev})
	}
}

// onReadyConfirmed issues the combined offset-write/read transfer.
func (s *Session) onReadyConfirmed(ev protocol.Event) (*step, bool) {
	if !ev.Recognized() {
		return nil, s.fail(&TransportFaultError{State: StateReadRequesting, Event: ev})
	}

	s.logInfo("slave is ready for reading", "event", ev.String())
	s.enter(StateReading, ev)

	next := s.prepare(s.tx[:protocol.OffsetSize], s.rx)
	return &next, false
}

// onReadDone compares the received bytes once the read has completed.
func (s *Session) onReadDone(ev protocol.Event) (*step, bool) {
	if !ev.Acknowledged() {
		return nil, s.fail(&TransportFaultError{State: StateReading, Event: ev})
	}

	s.logInfo("reading done", "event", ev.String())
	s.enter(StateComparing, ev)

	return nil, s.compare(ev)
}

// compare finishes the session with a Match or Mismatch verdict.
func (s *Session) compare(ev protocol.Event) bool {
	diffs := protocol.Compare(s.config.Offset, s.expected, s.rx)

	s.result = s.baseResult()
	if len(diffs) == 0 {
		s.result.Outcome = OutcomeMatch
		s.logInfo("read data match with written data", "event", ev.String())
	} else {
		s.result.Outcome = OutcomeMismatch
		s.result.Mismatches = diffs
		s.err = &MismatchError{Offset: s.config.Offset, Length: len(s.expected), Diffs: diffs}

		s.logError("read data doesn't match with written data",
			"event", ev.String(), "mismatches", len(diffs))
		for i, want := range s.expected {
			s.logError("byte",
				"offset", fmt.Sprintf("0x%04X", s.config.Offset+uint16(i)),
				"written", fmt.Sprintf("0x%02X", want),
				"read", fmt.Sprintf("0x%02X", s.rx[i]),
			)
		}
	}

	s.logInfo("test done", "outcome", s.result.Outcome.String())
	s.enter(StateDone, ev)
	return true
}

// checkPollBound returns a DeviceTimeoutError once another probe would exceed
// the configured attempt count or poll timeout.
func (s *Session) checkPollBound() error {
	elapsed := s.config.Clock().Sub(s.pollStart)

	if s.config.MaxPollAttempts > 0 && s.polls >= s.config.MaxPollAttempts {
		return &DeviceTimeoutError{Attempts: s.polls, Elapsed: elapsed}
	}
	if s.config.PollTimeout > 0 && elapsed >= s.config.PollTimeout {
		return &DeviceTimeoutError{Attempts: s.polls, Elapsed: elapsed}
	}
	return nil
}

// fail moves the session to StateFailed. Called with s.mu held; always
// returns true so callers can pass it on as the finished flag.
func (s *Session) fail(err error) bool {
	s.logError("session failed", "state", s.state.String(), "error", err.Error())

	s.result = s.baseResult()
	s.result.Outcome = OutcomeFailed
	s.err = err
	s.enter(StateFailed, 0)

	return true
}

func (s *Session) baseResult() Result {
	return Result{
		Address: s.config.Address,
		Offset:  s.config.Offset,
		Polls:   s.polls,
		Elapsed: s.config.Clock().Sub(s.started),
	}
}

// prepare reserves the next transfer sequence number.
func (s *Session) prepare(tx, rx []byte) step {
	s.seq++
	return step{seq: s.seq, tx: tx, rx: rx}
}

// enter changes state and queues a progress report.
func (s *Session) enter(state State, ev protocol.Event) {
	s.logDebug("state change", "from", s.state.String(), "to", state.String())
	s.state = state
	s.notify(state, ev)
}

func (s *Session) notify(state State, ev protocol.Event) {
	if s.config.ProgressCallback == nil {
		return
	}
	s.pending = append(s.pending, Progress{
		Phase:       state,
		Polls:       s.polls,
		Event:       ev,
		ElapsedTime: s.config.Clock().Sub(s.started),
	})
}

func (s *Session) takePending() []Progress {
	reports := s.pending
	s.pending = nil
	return reports
}

// deliver runs progress callbacks outside the lock, then signals completion.
func (s *Session) deliver(reports []Progress, finished bool) {
	for _, p := range reports {
		s.config.ProgressCallback(p)
	}
	if finished {
		close(s.done)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
