// Package sim provides a simulated 24-series I2C EEPROM with two-byte memory
// addressing. The simulator implements periph.io/x/conn/v3/i2c.Bus, so it can
// sit behind transfer.Async exactly like a real bus.
//
// The simulator models the behaviour a write/verify session depends on:
//   - writes land within the current page and roll over at the page boundary
//   - after a write the device ignores its address for a configurable number
//     of transfers, the way a real part NACKs during its internal write cycle
//   - sequential reads wrap at the end of memory
//
// Faults can be injected with Corrupt, and every transfer is recorded:
//
//	dev := sim.New(sim.Config{BusyProbes: 3})
//	engine, _ := transfer.NewAsync(dev)
//	// ... run a session ...
//	for _, op := range dev.Log() {
//	    fmt.Println(op)
//	}
package sim
