package kvline

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pior/kvline/internal/coarsetime"
	"github.com/pior/kvline/protocol"
)

// State is the lifecycle state of a Connection.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// DialFunc opens the stream socket for a Connection.
type DialFunc func(ctx context.Context) (net.Conn, error)

// Connection owns a single socket to the store and its open/closed state.
// Requests are strictly one at a time: the mutex is held from write to read.
type Connection struct {
	addr    string
	dial    DialFunc
	timeout time.Duration
	logger  zerolog.Logger

	mu       sync.Mutex
	conn     net.Conn
	reader   *bufio.Reader
	writer   *bufio.Writer
	lastUsed time.Time
}

// NewConnection creates a disconnected connection to addr.
// timeout is applied as the socket deadline when a request context has none.
func NewConnection(addr string, dial DialFunc, timeout time.Duration, logger zerolog.Logger) *Connection {
	return &Connection{
		addr:    addr,
		dial:    dial,
		timeout: timeout,
		logger:  logger,
	}
}

// Connect opens the socket. It fails with ErrAlreadyConnected when a socket
// is already open, and with a *ConnectionError when dialing fails.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}

	netConn, err := c.dial(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("connect failed")
		return &ConnectionError{Op: "connect", Err: err}
	}

	c.conn = netConn
	c.reader = bufio.NewReader(netConn)
	c.writer = bufio.NewWriter(netConn)
	c.lastUsed = coarsetime.Now()

	c.logger.Info().Msg("connected")
	return nil
}

// SendAndReceive writes req as one line and reads exactly one response line.
//
// Errors:
//   - ErrNotConnected: no socket
//   - *InvalidArgumentError: req is malformed, nothing was written
//   - *ConnectionError: write or read failed, the socket has been closed
//   - ctx.Err(): the context was done before anything was written
func (c *Connection) SendAndReceive(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if err := protocol.WriteRequest(c.writer, req); err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			return nil, err
		}
		return nil, c.fail("write", err)
	}

	resp, err := protocol.ReadResponse(c.reader)
	if err != nil {
		return nil, c.fail("read", err)
	}

	c.logger.Debug().
		Str("verb", string(req.Verb)).
		Str("key", req.Key).
		Str("status", string(resp.Status)).
		Msg("request")

	c.lastUsed = coarsetime.Now()
	return resp, nil
}

// fail drops the socket after a transport error (must be called with lock held)
func (c *Connection) fail(op string, err error) error {
	c.logger.Warn().Err(err).Str("op", op).Msg("connection failed, closing")
	c.release()
	return &ConnectionError{Op: op, Err: err}
}

// release closes and forgets the socket (must be called with lock held)
func (c *Connection) release() error {
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	c.writer = nil
	return err
}

// Close closes the socket. Closing a disconnected connection is a no-op.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.release()
	c.logger.Info().Msg("connection closed")
	return err
}

// State returns whether the socket is open.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return StateDisconnected
	}
	return StateConnected
}

// LastUsed returns when the connection last completed a request or connected.
func (c *Connection) LastUsed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

// Addr returns the target address
func (c *Connection) Addr() string {
	return c.addr
}
