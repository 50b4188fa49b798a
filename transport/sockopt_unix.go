//go:build unix

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// control lets a restarted router rebind its port immediately
func control(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
