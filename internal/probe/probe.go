package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultHost is a TEST-NET-1 documentation address (RFC 5737).
	DefaultHost = "192.0.2.1"
	DefaultPort = 8081
)

// Dialer is the subset of net.Dialer used by Prober, so tests can observe the connection.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Result is the outcome of a single probe. Exactly one of Open or Error is set.
type Result struct {
	Open  *bool  `json:"open,omitempty"`
	Error string `json:"error,omitempty"`
}

// Opened reports whether the probe found the port open.
func (r Result) Opened() bool {
	return r.Open != nil && *r.Open
}

// Outcome returns "open", "closed" or "error".
func (r Result) Outcome() string {
	switch {
	case r.Error != "":
		return "error"
	case r.Opened():
		return "open"
	default:
		return "closed"
	}
}

func openResult(open bool) Result {
	return Result{Open: &open}
}

func errorResult(err error) Result {
	return Result{Error: err.Error()}
}

// Prober checks whether a TCP endpoint accepts connections
type Prober struct {
	Host    string
	Port    int
	Timeout time.Duration // zero keeps the platform connect timeout
	Dialer  Dialer
}

// NewProber creates a Prober aimed at the default endpoint
func NewProber() *Prober {
	return &Prober{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Address returns the host:port the prober dials
func (p *Prober) Address() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// Probe attempts one TCP connect and never returns an error to the caller.
// Refused, unreachable and timed-out connects report closed; anything else reports an error.
func (p *Prober) Probe(ctx context.Context) Result {
	if p.Port < 1 || p.Port > 65535 {
		return errorResult(fmt.Errorf("invalid port %d", p.Port))
	}

	dialer := p.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: p.Timeout}
	}

	conn, err := dialer.DialContext(ctx, "tcp", p.Address())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errorResult(ctxErr)
		}
		return classify(err)
	}
	// only a live connection is closed
	_ = conn.Close()
	return openResult(true)
}

func classify(err error) Result {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errorResult(err)
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return errorResult(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		// socket, setsockopt and bind faults happen before the connect attempt
		var sysErr *os.SyscallError
		if errors.As(opErr.Err, &sysErr) && sysErr.Syscall != "connect" {
			return errorResult(err)
		}
		return openResult(false)
	}
	return errorResult(err)
}
