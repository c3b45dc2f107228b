// Package transport locates the local Discord RPC endpoint and exposes it
// as a blocking byte channel.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/atomic"
)

var (
	// ErrEndpointNotFound is returned when no Discord RPC socket exists
	// on this machine.
	ErrEndpointNotFound = errors.New("discord ipc endpoint not found")

	// ErrConnectionFailed is returned when a socket exists but could not
	// be opened.
	ErrConnectionFailed = errors.New("failed to connect to discord ipc endpoint")
)

// Conn is a byte channel to the Discord RPC endpoint. All operations
// block. A Conn has a single owner and is not safe for use from multiple
// goroutines.
type Conn interface {
	// Write writes all of data or fails.
	Write(data []byte) error
	// Read fills buf exactly or fails. A short read is an error.
	Read(buf []byte) error
	// Flush forces any buffered data out.
	Flush() error
	// Close flushes and shuts the channel down. Shutdown errors are
	// suppressed; Close is safe to call more than once.
	Close() error
}

// socketConn adapts a net.Conn (unix socket or named pipe) to Conn.
type socketConn struct {
	conn   net.Conn
	closed atomic.Bool
}

func newSocketConn(conn net.Conn) *socketConn {
	return &socketConn{conn: conn}
}

func (c *socketConn) Write(data []byte) error {
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write to socket: %w", err)
	}

	return nil
}

func (c *socketConn) Read(buf []byte) error {
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return fmt.Errorf("failed to read from socket: %w", err)
	}

	return nil
}

func (c *socketConn) Flush() error {
	// Stream sockets and pipes are unbuffered on our side.
	return nil
}

func (c *socketConn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	_ = c.Flush()

	// Half-close both directions where the platform supports it, then
	// release the handle. Best effort only.
	if uc, ok := c.conn.(*net.UnixConn); ok {
		_ = uc.CloseRead()
		_ = uc.CloseWrite()
	}

	_ = c.conn.Close()

	return nil
}
