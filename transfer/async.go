package transfer

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Stats counts completed transfers by outcome.
type Stats struct {
	Transfers       int
	Acknowledged    int
	NotAcknowledged int
	Faults          int
}

type request struct {
	addr protocol.Address
	tx   []byte
	rx   []byte
	done Callback
}

// Async is an Engine that performs blocking i2c.Bus transactions on a worker
// goroutine and reports their outcome through callbacks.
//
// An address-only probe is sent as a one-byte read. Linux i2c-dev buses
// opened through periph return success for an empty transaction without
// touching the wire, and a busy EEPROM NACKs its address on a read as well.
//
// Async is safe for concurrent use, but accepts only one transfer at a time.
type Async struct {
	bus    i2c.Bus
	config Config

	mu       sync.Mutex
	busy     bool
	closed   bool
	stats    Stats
	requests chan request
	stopped  chan struct{}

	// scratch receives the byte read by an address-only probe
	scratch [1]byte
}

// NewAsync creates an Async engine over bus and starts its worker.
// The bus speed is set first when WithSpeed is given.
func NewAsync(bus i2c.Bus, opts ...Option) (*Async, error) {
	if bus == nil {
		return nil, fmt.Errorf("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Speed != 0 {
		if err := bus.SetSpeed(cfg.Speed); err != nil {
			return nil, fmt.Errorf("set bus speed %s: %w", cfg.Speed, err)
		}
	}

	a := &Async{
		bus:      bus,
		config:   cfg,
		requests: make(chan request, 1),
		stopped:  make(chan struct{}),
	}
	go a.run()

	return a, nil
}

// Transfer queues a transfer and returns without waiting for the bus.
func (a *Async) Transfer(addr protocol.Address, tx, rx []byte, done Callback) error {
	if done == nil {
		return ErrNilCallback
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.busy {
		return ErrBusy
	}

	a.busy = true
	a.requests <- request{addr: addr, tx: tx, rx: rx, done: done}

	return nil
}

// Stats returns a snapshot of the transfer counters.
func (a *Async) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// String describes the engine and its bus.
func (a *Async) String() string {
	return "async(" + a.bus.String() + ")"
}

// Close stops the worker after the in-flight transfer, if any, has completed
// and its callback has returned. Close must not be called from a callback.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.requests)
	a.mu.Unlock()

	<-a.stopped
	return nil
}

// run is the worker loop. The in-flight slot is released before the callback
// so the callback can issue the next transfer.
func (a *Async) run() {
	defer close(a.stopped)

	for req := range a.requests {
		rx := req.rx
		if len(req.tx) == 0 && len(rx) == 0 {
			rx = a.scratch[:]
		}

		err := a.bus.Tx(req.addr.SevenBit(), req.tx, rx)
		ev := a.config.Classifier(err)

		a.config.Logger.Debug("transfer finished",
			"addr", req.addr.String(),
			"tx", len(req.tx),
			"rx", len(req.rx),
			"event", ev.String(),
			"err", err,
		)

		a.mu.Lock()
		a.busy = false
		a.stats.Transfers++
		switch {
		case ev.Acknowledged():
			a.stats.Acknowledged++
		case ev.NotAcknowledged():
			a.stats.NotAcknowledged++
		default:
			a.stats.Faults++
		}
		a.mu.Unlock()

		req.done(ev)
	}
}
