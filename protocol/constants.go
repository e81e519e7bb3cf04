package protocol

// Verb is the first token of a request line.
type Verb string

// StatusType is the first token of a response line.
type StatusType string

// ErrorCode is the symbolic token following ERROR in a response line.
type ErrorCode string

// Protocol delimiters
const (
	// LF terminates every request and response line.
	LF = "\n"

	// CR is tolerated before LF on responses.
	CR = "\r"

	// Space separates tokens.
	Space = " "
)

// Verbs
const (
	// VerbSet stores a value.
	//
	// Wire format: SET <key> <value>\n
	//
	// The value is the remainder of the line and may contain spaces.
	// The server splits the line into at most three tokens.
	//
	// Responses:
	//   - OK: stored
	//   - ERROR MISSING_ARGUMENTS: key or value missing
	VerbSet Verb = "SET"

	// VerbGet retrieves a value.
	//
	// Wire format: GET <key>\n
	//
	// Responses:
	//   - OK <value>: hit, value is everything after "OK "
	//   - ERROR KEY_NOT_FOUND: miss
	VerbGet Verb = "GET"

	// VerbDelete removes a key.
	//
	// Wire format: DELETE <key>\n
	//
	// Responses:
	//   - OK: removed
	//   - ERROR KEY_NOT_FOUND: nothing to remove
	VerbDelete Verb = "DELETE"

	// VerbExists checks for a key.
	//
	// Wire format: EXISTS <key>\n
	//
	// Responses:
	//   - OK 1: present
	//   - OK 0: absent
	VerbExists Verb = "EXISTS"
)

// Response statuses
const (
	StatusOK    StatusType = "OK"
	StatusError StatusType = "ERROR"
)

// Error codes sent by the server after ERROR.
const (
	CodeKeyNotFound      ErrorCode = "KEY_NOT_FOUND"
	CodeInvalidCommand   ErrorCode = "INVALID_COMMAND"
	CodeMissingArguments ErrorCode = "MISSING_ARGUMENTS"
)

// Tokens returned by EXISTS.
const (
	TokenTrue  = "1"
	TokenFalse = "0"
)

// Defaults for the server endpoint.
const (
	DefaultHost = "localhost"
	DefaultPort = 8080
)
