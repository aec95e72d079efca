//go:build linux

package transfer

import (
	"errors"
	"strings"
	"syscall"
)

// i2c-dev reports an unanswered address as EREMOTEIO on most adapters and
// ENXIO on some (i2c-bcm2835 among them).
var nackErrnos = []syscall.Errno{syscall.EREMOTEIO, syscall.ENXIO}

// isNACKErrno reports whether err carries a NACK errno. Some bus drivers
// flatten the errno into their message, so the errno text is matched too.
func isNACKErrno(err error) bool {
	msg := err.Error()
	for _, errno := range nackErrnos {
		if errors.Is(err, errno) || strings.Contains(msg, errno.Error()) {
			return true
		}
	}
	return false
}
