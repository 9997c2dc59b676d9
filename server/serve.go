package server

import (
	"io"
	"log"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"oneshot-fileserver/request"
	"oneshot-fileserver/transfer"
)

type Options struct {
	// FS resolves requested paths. Defaults to the unconfined os filesystem.
	FS     billy.Basic
	Window int
	Linger time.Duration
	// Strict validates the request line instead of slicing at a fixed offset.
	Strict bool
	Logger *log.Logger
}

// Server answers the request of a single peer with raw file bytes.
type Server struct {
	fs     billy.Basic
	window int
	linger time.Duration
	strict bool
	logger *log.Logger
}

func New(opts Options) *Server {
	s := &Server{
		fs:     opts.FS,
		window: opts.Window,
		linger: opts.Linger,
		strict: opts.Strict,
		logger: opts.Logger,
	}
	if s.fs == nil {
		s.fs = osfs.Default
	}
	if s.window <= 0 {
		s.window = transfer.Window
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s
}

// Exchange describes what Serve did for one peer.
type Exchange struct {
	Path     string
	Sent     int64
	ZeroCopy bool
}

// Serve reads one request from p, sends the leading window of the named file
// and waits for the linger period. The file and then the connection are
// closed before it returns. Receive, parse, open and send failures only
// shorten the response; they are logged and otherwise ignored.
func (s *Server) Serve(p *Peer) Exchange {
	var (
		x Exchange
		f billy.File
	)
	defer func() {
		if f != nil {
			f.Close()
		}
		p.Close()
	}()

	buf, err := request.Read(p.conn)
	if err != nil {
		s.logger.Printf("recv from %s: %v (%d bytes)", p.Addr, err, buf.N)
	}

	path, ok := s.requestedPath(buf)
	x.Path = path
	if ok {
		f, err = s.fs.Open(path)
		if err != nil {
			s.logger.Printf("open %q: %v", path, err)
			f = nil
		} else {
			st, err := transfer.Send(p.conn, f, s.window)
			x.Sent, x.ZeroCopy = st.Sent, st.ZeroCopy
			if err != nil {
				s.logger.Printf("send %q to %s: %v", path, p.Addr, err)
			}
		}
	}
	s.logger.Printf("%s %q sent=%d zerocopy=%v", p.Addr, x.Path, x.Sent, x.ZeroCopy)

	if s.linger > 0 {
		time.Sleep(s.linger)
	}
	return x
}

func (s *Server) requestedPath(buf *request.Buffer) (string, bool) {
	if !s.strict {
		return buf.Path(), true
	}
	rl, err := request.ParseRequestLine(buf.Bytes())
	if err != nil {
		s.logger.Printf("rejecting request: %v", err)
		return "", false
	}
	return rl.Path(), true
}
