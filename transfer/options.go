package transfer

import (
	"io"
	"log/slog"

	"periph.io/x/conn/v3/physic"
)

// Config holds the Async engine configuration.
type Config struct {
	// Speed is applied to the bus with SetSpeed when non-zero
	Speed physic.Frequency

	// Classifier maps bus errors to events
	Classifier Classifier

	// Logger receives per-transfer debug entries
	Logger *slog.Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Classifier: DefaultClassifier,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring Async.
type Option func(*Config)

// WithSpeed sets the bus clock.
//
// Example:
//
//	engine, err := transfer.NewAsync(bus, transfer.WithSpeed(400*physic.KiloHertz))
func WithSpeed(f physic.Frequency) Option {
	return func(c *Config) {
		c.Speed = f
	}
}

// WithClassifier replaces the error-to-event mapping.
func WithClassifier(classify Classifier) Option {
	return func(c *Config) {
		if classify != nil {
			c.Classifier = classify
		}
	}
}

// WithLogger sets the logger used for per-transfer debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
