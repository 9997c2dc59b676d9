package transfer

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// sendfile reports handled=false when the kernel refused the pair of
// descriptors before any byte moved, so the caller can copy instead.
func sendfile(dst syscall.Conn, infd int, window int) (int64, bool, error) {
	rc, err := dst.SyscallConn()
	if err != nil {
		return 0, false, nil
	}

	var (
		off     int64
		sendErr error
	)
	err = rc.Write(func(outfd uintptr) bool {
		for off < int64(window) {
			n, err := unix.Sendfile(int(outfd), infd, &off, window-int(off))
			switch {
			case err == unix.EAGAIN:
				return false
			case err == unix.EINTR:
				continue
			case err != nil:
				sendErr = err
				return true
			case n == 0:
				return true
			}
		}
		return true
	})
	if err == nil {
		err = sendErr
	}
	if off == 0 && (errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EOPNOTSUPP)) {
		return 0, false, nil
	}
	return off, true, err
}
