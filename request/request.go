package request

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"oneshot-fileserver/utils"
)

const (
	// BufferSize is one byte larger than MaxRead so the received text is
	// always NUL terminated.
	BufferSize = 257
	MaxRead    = BufferSize - 1

	// PathOffset skips "GET /" in "GET /name HTTP/1.1".
	PathOffset = 5
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrUnsupportedMethod    = errors.New("unsupported method")
)

// Buffer holds the bytes of a single receive.
type Buffer struct {
	data [BufferSize]byte
	N    int
}

// Read performs one read of at most MaxRead bytes from r. Partial requests
// are not completed with further reads; whatever arrived is the request.
func Read(r io.Reader) (*Buffer, error) {
	b := &Buffer{}
	n, err := r.Read(b.data[:MaxRead])
	if n > 0 {
		b.N = n
	}
	return b, err
}

// Bytes returns the received bytes.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.N]
}

// Path returns the text between PathOffset and the first space, overwriting
// that space with a NUL. The method token is not looked at, so any five byte
// prefix is skipped. Without a space the path runs to the end of the text.
func (b *Buffer) Path() string {
	s := utils.CString(b.data[PathOffset:])
	if i := utils.IndexOf(s, ' '); i >= 0 {
		b.data[PathOffset+i] = 0
		s = s[:i]
	}
	return string(s)
}

type RequestLine struct {
	Method        string
	RequestTarget string
	HTTPVersion   string
}

// ParseRequestLine reads "METHOD /target [VERSION]" from the first line of b.
// Only GET is accepted.
func ParseRequestLine(b []byte) (RequestLine, error) {
	line := utils.CString(b)
	if i := utils.IndexOf(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(string(line))
	if len(fields) < 2 || len(fields) > 3 {
		return RequestLine{}, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}
	rl := RequestLine{
		Method:        fields[0],
		RequestTarget: fields[1],
	}
	if len(fields) == 3 {
		rl.HTTPVersion = fields[2]
	}
	if rl.Method != "GET" {
		return rl, fmt.Errorf("%w: %q", ErrUnsupportedMethod, rl.Method)
	}
	if !strings.HasPrefix(rl.RequestTarget, "/") {
		return rl, fmt.Errorf("%w: target %q", ErrMalformedRequestLine, rl.RequestTarget)
	}
	return rl, nil
}

// Path returns the request target without its leading slash.
func (rl RequestLine) Path() string {
	return strings.TrimPrefix(rl.RequestTarget, "/")
}
