package eeprom

import (
	"time"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// DefaultMaxPollAttempts bounds acknowledge polling when no option overrides it.
// A 5 ms write cycle needs roughly 200 probes at 400 kHz.
const DefaultMaxPollAttempts = 1000

// Config holds the session configuration.
type Config struct {
	// Address is the 8-bit write-form device address
	Address protocol.Address

	// Offset is the memory offset the pattern is written to and read from
	Offset uint16

	// ProgressCallback is called as the session advances (optional)
	ProgressCallback ProgressCallback

	// Logger is used for diagnostic output (optional)
	Logger Logger

	// MaxPollAttempts is the most acknowledge probes issued; 0 means no limit
	MaxPollAttempts int

	// PollTimeout bounds the time spent polling from the first probe; 0 means no limit
	PollTimeout time.Duration

	// Clock returns the current time
	Clock func() time.Time
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Address:         protocol.DefaultAddress,
		Offset:          protocol.DefaultOffset,
		MaxPollAttempts: DefaultMaxPollAttempts,
		Clock:           time.Now,
	}
}

// Option is a functional option for configuring a Session.
type Option func(*Config)

// WithAddress sets the device address in 8-bit write form.
//
// Example:
//
//	s, _ := eeprom.New(engine, p, eeprom.WithAddress(0xA2))
func WithAddress(addr protocol.Address) Option {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithOffset sets the memory offset exercised by the session.
func WithOffset(offset uint16) Option {
	return func(c *Config) {
		c.Offset = offset
	}
}

// WithProgressCallback sets a callback function to track session progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for session diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMaxPollAttempts sets the most acknowledge probes issued before the
// session fails with a DeviceTimeoutError. Zero removes the limit.
//
// Example:
//
//	s, _ := eeprom.New(engine, p, eeprom.WithMaxPollAttempts(200))
func WithMaxPollAttempts(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxPollAttempts = n
		}
	}
}

// WithPollTimeout bounds the time spent acknowledge polling. Zero removes the bound.
//
// Example:
//
//	s, _ := eeprom.New(engine, p, eeprom.WithPollTimeout(10*time.Millisecond))
func WithPollTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.PollTimeout = d
		}
	}
}

// WithUnboundedPolling removes both poll bounds: the session keeps probing
// for as long as the device refuses its address.
func WithUnboundedPolling() Option {
	return func(c *Config) {
		c.MaxPollAttempts = 0
		c.PollTimeout = 0
	}
}

// WithClock replaces the time source used for elapsed times and the poll timeout.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Clock = now
		}
	}
}
