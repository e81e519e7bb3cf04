package protocol

// Request represents a single command line.
// It is a plain container, serialization lives in WriteRequest.
type Request struct {
	// Verb is the command: SET, GET, DELETE or EXISTS
	Verb Verb

	// Key is a single token, no whitespace
	Key string

	// Value is only sent for SET. It is the rest of the line and may contain spaces.
	Value string
}

// NewSetRequest creates a SET request.
func NewSetRequest(key, value string) *Request {
	return &Request{Verb: VerbSet, Key: key, Value: value}
}

// NewGetRequest creates a GET request.
func NewGetRequest(key string) *Request {
	return &Request{Verb: VerbGet, Key: key}
}

// NewDeleteRequest creates a DELETE request.
func NewDeleteRequest(key string) *Request {
	return &Request{Verb: VerbDelete, Key: key}
}

// NewExistsRequest creates an EXISTS request.
func NewExistsRequest(key string) *Request {
	return &Request{Verb: VerbExists, Key: key}
}

// Validate checks the key, and the value for SET.
func (r *Request) Validate() error {
	if err := ValidateKey(r.Key); err != nil {
		return err
	}

	if r.Verb == VerbSet {
		return ValidateValue(r.Value)
	}

	return nil
}

// String returns the request line without terminator.
func (r *Request) String() string {
	if r.Verb == VerbSet {
		return string(r.Verb) + Space + r.Key + Space + r.Value
	}
	return string(r.Verb) + Space + r.Key
}
