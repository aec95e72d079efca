// Package protocol implements the wire-level vocabulary for 24-series I2C EEPROMs
// with two-byte memory addressing.
//
// This package provides the device address form, memory offset encoding,
// transfer event codes, frame builders and the read-back comparison used by the
// write/verify session in package eeprom.
//
// # Frame Overview
//
// All frames are plain I2C transfers to the device address:
//
//	Write:        [OFFSET_HI][OFFSET_LO][DATA...]
//	Read request: [OFFSET_HI][OFFSET_LO]  followed by a repeated-start read of N bytes
//	Ack probe:    (empty)                 address phase only
//
// The memory offset is always big-endian.
//
// # Frame Builders
//
// Use the Build* functions to fill a caller-owned buffer:
//
//	n, err := protocol.BuildWriteFrame(tx, 0x0100, data)
//	n, err := protocol.BuildReadRequest(tx, 0x0100)
//
// # Events
//
// Every transfer completes with an Event. Only EventTransferComplete and
// EventNotAcknowledged are recognised by the session; every other code is a
// transport fault:
//
//	if ev.Acknowledged() {
//	    // device answered its address
//	}
//
// # Comparison
//
// Compare reports every differing byte between the expected pattern and what
// was read back:
//
//	diffs := protocol.Compare(0x0100, pattern, rx)
//	for _, d := range diffs {
//	    fmt.Println(d)
//	}
package protocol
