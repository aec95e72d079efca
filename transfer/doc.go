// Package transfer defines the non-blocking transfer primitive consumed by
// EEPROM sessions and provides Async, an implementation over any
// periph.io/x/conn/v3/i2c.Bus.
//
// # Contract
//
// An Engine accepts one transfer at a time. Transfer returns immediately;
// the callback runs exactly once when the bus phases finish, with an event
// code describing how they ended. If Transfer returns an error the callback is
// never invoked.
//
//	err := engine.Transfer(protocol.DefaultAddress, tx, rx, func(ev protocol.Event) {
//	    if ev.Acknowledged() {
//	        // rx is populated
//	    }
//	})
//
// # Async
//
// Async runs each transfer on a dedicated worker goroutine, so completion
// callbacks execute on that goroutine. The in-flight slot is released before
// the callback runs, which lets the callback issue the next transfer directly:
//
//	bus, _ := i2creg.Open("")
//	engine, err := transfer.NewAsync(bus, transfer.WithSpeed(400*physic.KiloHertz))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
// Bus errors are mapped to events by a Classifier. DefaultClassifier maps
// protocol.ErrNotAcknowledged and the Linux i2c-dev NACK errnos to
// protocol.EventNotAcknowledged and every other error to protocol.EventError.
package transfer
