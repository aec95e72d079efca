package sim

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// ErrIncompleteOffset is returned when a write carries only one offset byte.
var ErrIncompleteOffset = errors.New("sim: incomplete memory offset")

// Config describes the simulated part.
type Config struct {
	// Address is the 8-bit write-form device address (default 0xA0)
	Address protocol.Address

	// Size is the memory size in bytes, a power of two (default 32 KiB, a 24C256)
	Size int

	// PageSize is the write page size, a power of two (default 64)
	PageSize int

	// BusyProbes is how many transfers are refused after each write
	BusyProbes int

	// Fill is the initial content of every memory cell (default 0xFF)
	Fill *byte
}

// Default part geometry.
const (
	DefaultSize     = 32 * 1024
	DefaultPageSize = 64
	DefaultFill     = 0xFF
)

// Op is one recorded transfer.
type Op struct {
	Addr uint16
	W    []byte
	R    []byte
	Err  error
}

func (o Op) String() string {
	return fmt.Sprintf("addr=0x%02X w=[% X] r=[% X] err=%v", o.Addr, o.W, o.R, o.Err)
}

var _ i2c.Bus = (*EEPROM)(nil)

// EEPROM is a simulated two-byte-addressed I2C EEPROM.
// It is safe for concurrent use.
type EEPROM struct {
	mu      sync.Mutex
	cfg     Config
	mem     []byte
	pointer int
	busy    int
	speed   physic.Frequency
	probes  int
	log     []Op
}

// New creates a simulated EEPROM. Zero fields in cfg take their defaults;
// sizes that are not powers of two are rounded down to one.
func New(cfg Config) *EEPROM {
	if cfg.Address == 0 {
		cfg.Address = protocol.DefaultAddress
	}
	if cfg.Size <= 0 || cfg.Size > protocol.MaxMemorySize {
		cfg.Size = DefaultSize
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	cfg.Size = floorPow2(cfg.Size)
	cfg.PageSize = floorPow2(cfg.PageSize)
	if cfg.PageSize > cfg.Size {
		cfg.PageSize = cfg.Size
	}

	fill := byte(DefaultFill)
	if cfg.Fill != nil {
		fill = *cfg.Fill
	}

	mem := make([]byte, cfg.Size)
	for i := range mem {
		mem[i] = fill
	}

	return &EEPROM{
		cfg:   cfg,
		mem:   mem,
		speed: protocol.DefaultBusSpeedHz * physic.Hertz,
	}
}

func floorPow2(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// String implements i2c.Bus.
func (e *EEPROM) String() string {
	return fmt.Sprintf("sim-eeprom(%s, %d bytes)", e.cfg.Address, e.cfg.Size)
}

// SetSpeed implements i2c.Bus. Any positive frequency up to 1 MHz is accepted.
func (e *EEPROM) SetSpeed(f physic.Frequency) error {
	if f <= 0 || f > physic.MegaHertz {
		return fmt.Errorf("sim: unsupported bus speed %s", f)
	}
	e.mu.Lock()
	e.speed = f
	e.mu.Unlock()
	return nil
}

// Speed returns the last bus speed set.
func (e *EEPROM) Speed() physic.Frequency {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// Tx implements i2c.Bus.
//
// An empty transfer is an acknowledge probe. A write of two or more bytes sets
// the memory pointer from the big-endian offset and stores any remaining bytes
// in the current page, then starts a write cycle. A read returns bytes from the
// memory pointer onwards.
func (e *EEPROM) Tx(addr uint16, w, r []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.tx(addr, w, r)
	e.log = append(e.log, Op{
		Addr: addr,
		W:    append([]byte(nil), w...),
		R:    append([]byte(nil), r...),
		Err:  err,
	})
	return err
}

func (e *EEPROM) tx(addr uint16, w, r []byte) error {
	if len(w) == 0 && len(r) == 0 {
		e.probes++
	}

	if addr != e.cfg.Address.SevenBit() {
		return fmt.Errorf("sim: no device at %s: %w", protocol.FromSevenBit(addr), protocol.ErrNotAcknowledged)
	}

	if e.busy > 0 {
		e.busy--
		return fmt.Errorf("sim: write cycle in progress: %w", protocol.ErrNotAcknowledged)
	}

	switch {
	case len(w) == 1:
		return ErrIncompleteOffset
	case len(w) >= protocol.OffsetSize:
		offset, _ := protocol.DecodeOffset(w)
		e.pointer = int(offset) & (e.cfg.Size - 1)
		if data := w[protocol.OffsetSize:]; len(data) > 0 {
			e.writePage(data)
			e.busy = e.cfg.BusyProbes
		}
	}

	for i := range r {
		r[i] = e.mem[e.pointer]
		e.pointer = (e.pointer + 1) & (e.cfg.Size - 1)
	}

	return nil
}

// writePage stores data starting at the pointer, wrapping within its page.
func (e *EEPROM) writePage(data []byte) {
	mask := e.cfg.PageSize - 1
	base := e.pointer &^ mask
	for _, b := range data {
		e.mem[e.pointer] = b
		e.pointer = base | ((e.pointer + 1) & mask)
	}
}

// Corrupt XORs mask into the byte at offset, modelling a failing cell.
func (e *EEPROM) Corrupt(offset uint16, mask byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mem[int(offset)&(e.cfg.Size-1)] ^= mask
}

// Peek returns a copy of n bytes starting at offset, wrapping at the end of memory.
func (e *EEPROM) Peek(offset uint16, n int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		out[i] = e.mem[(int(offset)+i)&(e.cfg.Size-1)]
	}
	return out
}

// SetBusy makes the device refuse the next n transfers.
func (e *EEPROM) SetBusy(n int) {
	e.mu.Lock()
	e.busy = n
	e.mu.Unlock()
}

// Probes returns the number of address-only transfers seen.
func (e *EEPROM) Probes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.probes
}

// Log returns a copy of all recorded transfers.
func (e *EEPROM) Log() []Op {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Op(nil), e.log...)
}

// Config returns the effective configuration.
func (e *EEPROM) Config() Config {
	return e.cfg
}
