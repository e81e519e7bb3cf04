package protocol

import (
	"bufio"
	"io"
	"strings"
)

const (
	okPrefix    = string(StatusOK) + Space
	errorPrefix = string(StatusError) + Space
)

// MaxLineLength bounds a response line, terminator excluded.
const MaxLineLength = 1 << 20

// ReadLine reads one LF-terminated line from r and returns it without the
// terminator. A single CR before the LF is dropped as well.
//
// The reader accumulates across as many underlying reads as needed, and bytes
// past the LF stay buffered in r for the next call. Hitting EOF after a partial
// line returns io.ErrUnexpectedEOF. A line longer than MaxLineLength returns
// ErrLineTooLong; the rest of that line is left unread.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Line exceeds the buffer, keep collecting
		long := append([]byte(nil), line...)
		for err == bufio.ErrBufferFull {
			if len(long) > MaxLineLength {
				return "", ErrLineTooLong
			}
			line, err = r.ReadSlice('\n')
			long = append(long, line...)
		}
		line = long
	}
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}

	if len(line)-1 > MaxLineLength {
		return "", ErrLineTooLong
	}

	s := string(line[:len(line)-1])
	return strings.TrimSuffix(s, CR), nil
}

// ReadResponse reads and classifies a single response line from r.
//
// Any complete line is returned as a Response, recognized or not: deciding
// whether it is acceptable for a given verb is the decoders' job.
//
// Go errors returned indicate I/O failures:
//   - io.EOF: peer closed before sending anything
//   - io.ErrUnexpectedEOF: peer closed mid-line
//   - ErrLineTooLong: no LF within MaxLineLength bytes
//   - Other I/O errors: reset, timeout
func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := ReadLine(r)
	if err != nil {
		return nil, err
	}
	return ParseResponse(line), nil
}

// ParseResponse classifies a response line that has already been delimited.
func ParseResponse(line string) *Response {
	resp := &Response{Line: line}

	switch {
	case line == string(StatusOK):
		resp.Status = StatusOK

	case strings.HasPrefix(line, okPrefix):
		resp.Status = StatusOK
		resp.Token = line[len(okPrefix):]
		resp.HasToken = true

	case line == string(StatusError):
		resp.Status = StatusError

	case strings.HasPrefix(line, errorPrefix):
		resp.Status = StatusError
		resp.Code = ErrorCode(line[len(errorPrefix):])

	default:
		status, _, _ := strings.Cut(line, Space)
		resp.Status = StatusType(status)
	}

	return resp
}
