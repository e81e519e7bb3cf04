// Package kvline is a client for a key-value store speaking a textual,
// line-delimited request/response protocol over TCP.
//
// A Client owns exactly one connection and issues one request at a time:
//
//	err := kvline.With(ctx, kvline.DefaultConfig(), func(c *kvline.Client) error {
//	    if _, err := c.Set(ctx, "username", "Alice"); err != nil {
//	        return err
//	    }
//	    item, err := c.Get(ctx, "username")
//	    ...
//	})
//
// There is no pooling, pipelining, retry or reconnection.
package kvline

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/pior/kvline/protocol"
)

// Item is the result of a Get.
type Item struct {
	Key   string
	Value string
	Found bool // false when the key is not stored
}

// Config holds configuration for a client.
type Config struct {
	// Host of the store. Defaults to "localhost".
	Host string

	// Port of the store. Defaults to 8080.
	Port int

	// DialTimeout bounds connection establishment.
	// Zero means no limit besides the context deadline.
	DialTimeout time.Duration

	// Timeout is applied as the socket deadline of a request whose context has no deadline.
	// Zero means no limit.
	Timeout time.Duration

	// Dialer is the net.Dialer used to connect.
	// If nil, a net.Dialer with DialTimeout is used.
	Dialer *net.Dialer

	// Logger receives connection lifecycle and request events.
	// If nil, nothing is logged.
	Logger *zerolog.Logger

	// NewCircuitBreaker creates a circuit breaker for the server address.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func(serverAddr string) CircuitBreaker

	// for testing purposes only
	dial DialFunc
}

// DefaultConfig returns the configuration for localhost:8080.
func DefaultConfig() Config {
	return Config{
		Host:        protocol.DefaultHost,
		Port:        protocol.DefaultPort,
		DialTimeout: 5 * time.Second,
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Client is a kvline client bound to one server connection.
// It is safe to call from several goroutines, but requests are serialized.
type Client struct {
	conn    *Connection
	breaker CircuitBreaker // nil if not configured
	logger  zerolog.Logger
	stats   *clientStatsCollector
}

var _ Querier = (*Client)(nil)

// New creates a disconnected client. Call Connect before issuing requests.
func New(config Config) (*Client, error) {
	if config.Host == "" {
		config.Host = protocol.DefaultHost
	}
	if config.Port == 0 {
		config.Port = protocol.DefaultPort
	}
	if config.Port < 0 || config.Port > 65535 {
		return nil, fmt.Errorf("kvline: invalid port %d", config.Port)
	}

	addr := config.Addr()

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	logger = logger.With().Str("addr", addr).Logger()

	dial := config.dial
	if dial == nil {
		dialer := config.Dialer
		if dialer == nil {
			dialer = &net.Dialer{Timeout: config.DialTimeout}
		}
		dial = func(ctx context.Context) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp", addr)
		}
	}

	client := &Client{
		conn:   NewConnection(addr, dial, config.Timeout, logger),
		logger: logger,
		stats:  newClientStatsCollector(),
	}

	if config.NewCircuitBreaker != nil {
		client.breaker = config.NewCircuitBreaker(addr)
	}

	return client, nil
}

// With connects a new client, runs fn and closes the client on every exit
// path, panics included. A Close error is reported only if fn succeeded.
func With(ctx context.Context, config Config, fn func(c *Client) error) (err error) {
	client, err := New(config)
	if err != nil {
		return err
	}

	if err := client.Connect(ctx); err != nil {
		return err
	}

	defer func() {
		if closeErr := client.Close(); err == nil {
			err = closeErr
		}
	}()

	return fn(client)
}

// Connect opens the connection to the server.
// With a circuit breaker, dial failures count against it and an open circuit
// fails immediately with a *ConnectionError, without dialing.
func (c *Client) Connect(ctx context.Context) error {
	if c.breaker == nil {
		return c.conn.Connect(ctx)
	}

	_, err := c.breaker.Execute(func() (*protocol.Response, error) {
		return nil, c.conn.Connect(ctx)
	})
	return breakerError("connect", err)
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	return c.conn.Close()
}

// State returns the connection state.
func (c *Client) State() State {
	return c.conn.State()
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.conn.Addr()
}

// LastUsed returns when the client last connected or completed a request.
// It is the zero time before the first Connect.
func (c *Client) LastUsed() time.Time {
	return c.conn.LastUsed()
}

// Stats returns a snapshot of client statistics.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// BreakerState returns the circuit breaker state, closed when none is configured.
func (c *Client) BreakerState() gobreaker.State {
	if c.breaker == nil {
		return gobreaker.StateClosed
	}
	return c.breaker.State()
}

// execRequest validates req and runs one request-response cycle on the connection.
// If a circuit breaker is configured, the cycle is wrapped with it.
func (c *Client) execRequest(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if err := req.Validate(); err != nil {
		c.stats.recordError()
		return nil, err
	}

	if c.breaker == nil {
		resp, err := c.conn.SendAndReceive(ctx, req)
		if err != nil {
			c.stats.recordError()
			return nil, err
		}
		return resp, nil
	}

	// Not connected is a caller error, keep it out of the breaker counts
	if c.conn.State() != StateConnected {
		c.stats.recordError()
		return nil, ErrNotConnected
	}

	resp, err := c.breaker.Execute(func() (*protocol.Response, error) {
		return c.conn.SendAndReceive(ctx, req)
	})
	if err != nil {
		c.stats.recordError()
		return nil, breakerError("execute", err)
	}
	return resp, nil
}

// breakerError reports a rejection by the circuit breaker as a connection failure.
func breakerError(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &ConnectionError{Op: op, Err: err}
	}
	return err
}

// Set stores value under key. It returns true once the server acknowledged it.
func (c *Client) Set(ctx context.Context, key, value string) (bool, error) {
	resp, err := c.execRequest(ctx, protocol.NewSetRequest(key, value))
	if err != nil {
		return false, err
	}

	stored, err := protocol.DecodeSet(resp)
	if err != nil {
		c.stats.recordError()
		return false, err
	}

	c.stats.recordSet()
	return stored, nil
}

// Get retrieves the value stored under key.
// A missing key is not an error: the Item has Found=false.
func (c *Client) Get(ctx context.Context, key string) (Item, error) {
	resp, err := c.execRequest(ctx, protocol.NewGetRequest(key))
	if err != nil {
		return Item{}, err
	}

	value, found, err := protocol.DecodeGet(resp)
	if err != nil {
		c.stats.recordError()
		return Item{}, err
	}

	c.stats.recordGet(found)
	return Item{Key: key, Value: value, Found: found}, nil
}

// Delete removes key. It returns false, not an error, when the key did not exist.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	resp, err := c.execRequest(ctx, protocol.NewDeleteRequest(key))
	if err != nil {
		return false, err
	}

	deleted, err := protocol.DecodeDelete(resp)
	if err != nil {
		c.stats.recordError()
		return false, err
	}

	c.stats.recordDelete(deleted)
	return deleted, nil
}

// Exists reports whether key is stored.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := c.execRequest(ctx, protocol.NewExistsRequest(key))
	if err != nil {
		return false, err
	}

	exists, err := protocol.DecodeExists(resp)
	if err != nil {
		c.stats.recordError()
		return false, err
	}

	c.stats.recordExists()
	return exists, nil
}
