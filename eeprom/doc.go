// Package eeprom writes a byte pattern to an I2C EEPROM and verifies it reads
// back unchanged, without ever blocking the calling goroutine.
//
// # Overview
//
// A Session drives the complete write/verify sequence through an asynchronous
// transfer.Engine:
//   - Writing the offset and pattern in one transfer
//   - Acknowledge polling while the part runs its internal write cycle
//   - Confirming the part is ready and sending the read offset
//   - Reading the pattern back
//   - Comparing every byte against what was written
//
// Every step after Start runs inside the engine's completion callbacks.
//
// # Basic Usage
//
//	dev := sim.New(sim.Config{})
//	engine, err := transfer.NewAsync(dev)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	s, err := eeprom.New(engine, pattern.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Outcome) // match
//
// Start may also be handed to any scheduler; Done and Wait report completion:
//
//	go s.Start()
//	<-s.Done()
//	res, err := s.Result()
//
// # Configuration Options
//
//	s, err := eeprom.New(engine, p,
//	    eeprom.WithAddress(0xA2),
//	    eeprom.WithOffset(0x0200),
//	    eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())),
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithMaxPollAttempts(500),
//	    eeprom.WithPollTimeout(20*time.Millisecond),
//	)
//
// # Acknowledge Polling
//
// While an EEPROM commits a write it does not acknowledge its address. The
// session probes it with address-only transfers until it answers. The number
// of probes is bounded by WithMaxPollAttempts and, optionally, by
// WithPollTimeout; WithUnboundedPolling removes both bounds.
//
// # Error Handling
//
// The package provides structured error types:
//   - MismatchError: read-back data differs; lists every differing byte
//   - DeviceTimeoutError: the device never acknowledged within the poll bound
//   - TransportFaultError: a transfer ended with an unrecognised event
//   - UnexpectedCallbackError: a completion arrived for a transfer that is no longer current
//
// Each matches its sentinel with errors.Is (ErrDataMismatch, ErrDeviceTimeout,
// ErrTransportFault, ErrUnexpectedCallback).
package eeprom
