//go:build !linux

package transfer

func isNACKErrno(error) bool {
	return false
}
