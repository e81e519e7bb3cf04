package testutils

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Server is an in-process store speaking the kvline line protocol, for tests.
// It accepts any number of connections and serves each one sequentially.
type Server struct {
	ln net.Listener

	mu       sync.Mutex
	data     map[string]string
	received []string
	conns    map[net.Conn]struct{}
	chunked  bool
	closed   bool

	wg sync.WaitGroup
}

// NewServer starts a server on a random local port. It is closed on test cleanup.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("Failed to start test server: %v", err)
	}

	s := &Server{
		ln:    ln,
		data:  make(map[string]string),
		conns: make(map[net.Conn]struct{}),
	}

	s.wg.Add(1)
	go s.accept()

	tb.Cleanup(s.Close)
	return s
}

// Addr returns the listening address
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Host returns the listening host
func (s *Server) Host() string {
	return s.ln.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the listening port
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// SetChunked makes the server write responses one byte at a time.
func (s *Server) SetChunked(chunked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunked = chunked
}

// Received returns every non-empty line received so far.
func (s *Server) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

// Len returns the number of stored keys
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// DropConnections closes every open client connection, keeping the listener.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

// Close stops the listener and drops all connections.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.ln.Close()
	s.DropConnections()
	s.wg.Wait()
}

func (s *Server) accept() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		response := s.process(line) + "\n"

		s.mu.Lock()
		chunked := s.chunked
		s.mu.Unlock()

		if chunked {
			for i := 0; i < len(response); i++ {
				if _, err := conn.Write([]byte{response[i]}); err != nil {
					return
				}
			}
			continue
		}

		if _, err := conn.Write([]byte(response)); err != nil {
			return
		}
	}
}

func (s *Server) process(line string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received = append(s.received, line)

	verb, rest := nextToken(line)
	key, rest := nextToken(rest)

	switch verb {
	case "SET":
		value := strings.TrimPrefix(rest, " ")
		if key == "" || value == "" {
			return "ERROR MISSING_ARGUMENTS"
		}
		s.data[key] = value
		return "OK"

	case "GET":
		if key == "" {
			return "ERROR MISSING_ARGUMENTS"
		}
		value, ok := s.data[key]
		if !ok {
			return "ERROR KEY_NOT_FOUND"
		}
		return "OK " + value

	case "DELETE":
		if key == "" {
			return "ERROR MISSING_ARGUMENTS"
		}
		if _, ok := s.data[key]; !ok {
			return "ERROR KEY_NOT_FOUND"
		}
		delete(s.data, key)
		return "OK"

	case "EXISTS":
		if key == "" {
			return "ERROR MISSING_ARGUMENTS"
		}
		_, ok := s.data[key]
		return "OK " + strconv.Itoa(btoi(ok))

	default:
		return "ERROR INVALID_COMMAND"
	}
}

// nextToken splits off the first whitespace-delimited token of s.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t\v\f")
	end := strings.IndexAny(s, " \t\v\f")
	if end == -1 {
		return s, ""
	}
	return s[:end], s[end:]
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
