package protocol

// Response represents one parsed response line.
// This is a low-level container, mapping to typed results lives in the decoders.
type Response struct {
	// Status is OK, ERROR, or the unrecognized first token of the line
	Status StatusType

	// Token is everything after "OK " (may be empty or contain spaces)
	Token string

	// HasToken distinguishes "OK " (empty token) from a bare "OK"
	HasToken bool

	// Code is the symbol after "ERROR "
	Code ErrorCode

	// Line is the full line without terminator
	Line string
}

// IsOK returns true for a bare "OK" line.
func (r *Response) IsOK() bool {
	return r.Status == StatusOK && !r.HasToken
}

// IsValue returns true for an "OK <token>" line.
func (r *Response) IsValue() bool {
	return r.Status == StatusOK && r.HasToken
}

// IsError returns true for an ERROR line.
func (r *Response) IsError() bool {
	return r.Status == StatusError
}

// IsNotFound returns true for "ERROR KEY_NOT_FOUND".
func (r *Response) IsNotFound() bool {
	return r.Status == StatusError && r.Code == CodeKeyNotFound
}
