package protocol

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Buffer pool for building request lines
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 128))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	// Oversized buffers from large values are not worth keeping
	if buf.Cap() > 64*1024 {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// AppendRequest appends the wire form of req, terminator included, to dst.
// The request is not validated.
func AppendRequest(dst []byte, req *Request) []byte {
	dst = append(dst, req.Verb...)
	dst = append(dst, Space...)
	dst = append(dst, req.Key...)
	if req.Verb == VerbSet {
		dst = append(dst, Space...)
		dst = append(dst, req.Value...)
	}
	return append(dst, LF...)
}

// WriteRequest validates req and writes it to w as one line.
// Format: <verb> <key>[ <value>]\n
//
// The line is handed to w in a single Write call so a failure never leaves
// half a command on a healthy stream. A *bufio.Writer is flushed.
func WriteRequest(w io.Writer, req *Request) error {
	switch req.Verb {
	case VerbSet, VerbGet, VerbDelete, VerbExists:
	default:
		return &InvalidArgumentError{Field: "verb", Message: fmt.Sprintf("unknown verb %q", req.Verb)}
	}

	if err := req.Validate(); err != nil {
		return err
	}

	buf := getBuffer()
	defer putBuffer(buf)

	buf.Write(AppendRequest(buf.AvailableBuffer(), req))

	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if bw, ok := w.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}
