package transfer

import (
	"io"
	"syscall"
)

// Window is the number of bytes sent from the start of a file. It does not
// depend on the file size: longer files are cut, shorter ones end early.
const Window = 256

const maxChunk = 32 * 1024

type Stats struct {
	Sent     int64
	ZeroCopy bool
}

type fder interface {
	Fd() uintptr
}

// Send writes up to window bytes of src, starting at offset 0, to dst. The
// kernel moves the bytes when dst is a socket and src a file and the platform
// supports it, otherwise they are copied through a buffer.
func Send(dst io.Writer, src io.ReaderAt, window int) (Stats, error) {
	if window <= 0 {
		return Stats{}, nil
	}
	if sc, ok := dst.(syscall.Conn); ok {
		if f, ok := src.(fder); ok {
			n, handled, err := sendfile(sc, int(f.Fd()), window)
			if handled {
				return Stats{Sent: n, ZeroCopy: true}, err
			}
		}
	}
	n, err := copyWindow(dst, src, window)
	return Stats{Sent: n}, err
}

func copyWindow(dst io.Writer, src io.ReaderAt, window int) (int64, error) {
	buf := make([]byte, min(window, maxChunk))
	var off int64
	for off < int64(window) {
		n, err := src.ReadAt(buf[:min(len(buf), window-int(off))], off)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return off, werr
			}
			off += int64(n)
		}
		if err == io.EOF {
			return off, nil
		}
		if err != nil {
			return off, err
		}
	}
	return off, nil
}
