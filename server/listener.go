package server

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Endpoint is the bound, listening socket.
type Endpoint struct {
	ln      *net.TCPListener
	backlog int
}

// Listen resolves service and listens on the first candidate address only.
// A failure at any step is returned as an *Error naming that step; no other
// candidate is tried.
func Listen(service string, backlog int) (*Endpoint, error) {
	candidates, err := Resolve(service)
	if err != nil {
		return nil, err
	}
	c := candidates[0]

	fd, err := unix.Socket(c.Family, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, newError(SocketCreateFailure, err)
	}
	unix.CloseOnExec(fd)

	if err := unix.Bind(fd, c.Addr); err != nil {
		unix.Close(fd)
		return nil, newError(BindFailure, fmt.Errorf("%s: %w", c, err))
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, newError(ListenFailure, err)
	}

	// FileListener dups the descriptor, f keeps the original.
	f := os.NewFile(uintptr(fd), "listener")
	defer f.Close()
	ln, err := net.FileListener(f)
	if err != nil {
		return nil, newError(ListenFailure, err)
	}
	tl, ok := ln.(*net.TCPListener)
	if !ok {
		ln.Close()
		return nil, newError(ListenFailure, fmt.Errorf("unexpected listener type %T", ln))
	}
	return &Endpoint{ln: tl, backlog: backlog}, nil
}

func (e *Endpoint) Addr() net.Addr {
	return e.ln.Addr()
}

func (e *Endpoint) Backlog() int {
	return e.backlog
}

// Accept blocks until one peer connects.
func (e *Endpoint) Accept() (*Peer, error) {
	conn, err := e.ln.AcceptTCP()
	if err != nil {
		return nil, newError(AcceptFailure, err)
	}
	return &Peer{conn: conn, Addr: conn.RemoteAddr()}, nil
}

func (e *Endpoint) Close() error {
	if e == nil || e.ln == nil {
		return nil
	}
	return e.ln.Close()
}

// Peer is the accepted connection.
type Peer struct {
	conn *net.TCPConn
	Addr net.Addr
}

func (p *Peer) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
