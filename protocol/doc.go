// Package protocol implements the wire format of the kvline line protocol.
//
// Every request is one line: a verb, a key and, for SET only, a value that
// runs to the end of the line. Every request gets exactly one response line:
// OK, OK <token>, or ERROR <code>.
//
//	SET username Alice Smith\n   ->  OK\n
//	GET username\n               ->  OK Alice Smith\n
//	EXISTS username\n            ->  OK 1\n
//	DELETE username\n            ->  OK\n
//	DELETE username\n            ->  ERROR KEY_NOT_FOUND\n
//
// # Serialization and Parsing
//
// WriteRequest validates and serializes a Request:
//
//	err := protocol.WriteRequest(conn, protocol.NewGetRequest("username"))
//
// ReadResponse reads exactly one line from a bufio.Reader and classifies it:
//
//	resp, err := protocol.ReadResponse(bufio.NewReader(conn))
//
// The reader never assumes one socket read equals one response: partial lines
// are accumulated and extra bytes stay buffered for the next call.
//
// # Decoding
//
// DecodeSet, DecodeGet, DecodeDelete and DecodeExists map a Response to the
// result of the verb that produced it. A line outside the accepted patterns
// is a *ViolationError.
//
// # Error Handling
//
//   - *InvalidArgumentError (errors.Is ErrInvalidArgument): rejected before sending
//   - ErrNotConnected: no connection
//   - *ConnectionError: transport failure, see IsConnectionFailure
//   - *ViolationError (errors.Is ErrProtocolViolation): unexpected response
package protocol
