package protocol

import (
	"errors"
	"fmt"
)

// Error types for the line protocol.
// Callers are expected to handle ConnectionError separately: it reports an
// environmental condition, while InvalidArgumentError and ViolationError point
// at a programming or compatibility problem.

var (
	// ErrInvalidArgument matches every *InvalidArgumentError via errors.Is.
	ErrInvalidArgument = errors.New("kvline: invalid argument")

	// ErrNotConnected is returned when an operation runs on a disconnected client.
	ErrNotConnected = errors.New("kvline: not connected")

	// ErrAlreadyConnected is returned by Connect on a connected client.
	ErrAlreadyConnected = errors.New("kvline: already connected")

	// ErrProtocolViolation matches every *ViolationError via errors.Is.
	ErrProtocolViolation = errors.New("kvline: protocol violation")

	// ErrLineTooLong is returned by the reader when a response line exceeds
	// MaxLineLength. The stream is out of sync afterwards.
	ErrLineTooLong = errors.New("kvline: response line too long")
)

// InvalidArgumentError is returned when a key or value fails local validation.
// It is raised before any network I/O.
//
// Common causes:
//   - Empty key or value
//   - Key contains whitespace
//   - Value contains a line break
//
// Connection handling: connection is untouched, nothing was sent
type InvalidArgumentError struct {
	Field   string // "key" or "value"
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "kvline: invalid " + e.Field + ": " + e.Message
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConnectionError wraps transport failures during connect, write or read.
//
// Common causes:
//   - Connection refused or unresolvable address
//   - Connection reset by peer
//   - Deadline exceeded
//   - Peer closed the connection mid-line
//   - Response line longer than MaxLineLength
//   - Circuit breaker open
//
// Connection handling: connection is already broken, it has been closed
type ConnectionError struct {
	Op  string // Operation that failed (connect, write, read, execute)
	Err error  // Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("kvline: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ViolationError is returned when a response line does not match any pattern
// accepted for the request that produced it.
//
// Code is set when the line was an ERROR response.
//
// Connection handling: the line was consumed whole, the stream stays in sync
type ViolationError struct {
	Verb Verb
	Line string
	Code ErrorCode
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("kvline: unexpected response to %s: %q", e.Verb, e.Line)
}

func (e *ViolationError) Is(target error) bool {
	return target == ErrProtocolViolation
}

// IsConnectionFailure reports whether err carries a *ConnectionError.
func IsConnectionFailure(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}
