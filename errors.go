package kvline

import "github.com/pior/kvline/protocol"

// Error taxonomy, see package protocol for details.
type (
	InvalidArgumentError = protocol.InvalidArgumentError
	ConnectionError      = protocol.ConnectionError
	ViolationError       = protocol.ViolationError
)

var (
	ErrInvalidArgument   = protocol.ErrInvalidArgument
	ErrNotConnected      = protocol.ErrNotConnected
	ErrAlreadyConnected  = protocol.ErrAlreadyConnected
	ErrProtocolViolation = protocol.ErrProtocolViolation
	ErrLineTooLong       = protocol.ErrLineTooLong
)

// IsConnectionFailure reports whether err is a transport failure.
// Such errors are environmental: the connection has been closed and the
// caller may decide to Connect again.
func IsConnectionFailure(err error) bool {
	return protocol.IsConnectionFailure(err)
}
