package server

import (
	"errors"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// Candidate is a local address a listening socket can be bound to.
type Candidate struct {
	Family int
	Addr   unix.Sockaddr
}

func (c Candidate) String() string {
	switch sa := c.Addr.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(sa.Addr[:]).String(), strconv.Itoa(sa.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(sa.Addr[:]).String(), strconv.Itoa(sa.Port))
	default:
		return "?"
	}
}

// Resolve turns a port number or service name into the wildcard stream
// addresses of both families, IPv4 first.
func Resolve(service string) ([]Candidate, error) {
	if service == "" {
		return nil, newError(ResolveFailure, errors.New("empty service"))
	}
	port, err := net.LookupPort("tcp", service)
	if err != nil {
		return nil, newError(ResolveFailure, err)
	}
	return []Candidate{
		{Family: unix.AF_INET, Addr: &unix.SockaddrInet4{Port: port}},
		{Family: unix.AF_INET6, Addr: &unix.SockaddrInet6{Port: port}},
	}, nil
}
