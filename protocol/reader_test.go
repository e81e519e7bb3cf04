package protocol

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Response
	}{
		{
			name:  "OK",
			input: "OK\n",
			want:  &Response{Status: StatusOK, Line: "OK"},
		},
		{
			name:  "OK with value",
			input: "OK Alice\n",
			want:  &Response{Status: StatusOK, Token: "Alice", HasToken: true, Line: "OK Alice"},
		},
		{
			name:  "OK with spaced value",
			input: "OK hello big world\n",
			want:  &Response{Status: StatusOK, Token: "hello big world", HasToken: true, Line: "OK hello big world"},
		},
		{
			name:  "OK with empty value",
			input: "OK \n",
			want:  &Response{Status: StatusOK, Token: "", HasToken: true, Line: "OK "},
		},
		{
			name:  "OK with trailing spaces kept",
			input: "OK padded  \n",
			want:  &Response{Status: StatusOK, Token: "padded  ", HasToken: true, Line: "OK padded  "},
		},
		{
			name:  "CRLF terminator",
			input: "OK 1\r\n",
			want:  &Response{Status: StatusOK, Token: "1", HasToken: true, Line: "OK 1"},
		},
		{
			name:  "key not found",
			input: "ERROR KEY_NOT_FOUND\n",
			want:  &Response{Status: StatusError, Code: CodeKeyNotFound, Line: "ERROR KEY_NOT_FOUND"},
		},
		{
			name:  "invalid command",
			input: "ERROR INVALID_COMMAND\n",
			want:  &Response{Status: StatusError, Code: CodeInvalidCommand, Line: "ERROR INVALID_COMMAND"},
		},
		{
			name:  "bare ERROR",
			input: "ERROR\n",
			want:  &Response{Status: StatusError, Line: "ERROR"},
		},
		{
			name:  "unknown status",
			input: "HELLO there\n",
			want:  &Response{Status: "HELLO", Line: "HELLO there"},
		},
		{
			name:  "lowercase ok is not OK",
			input: "ok\n",
			want:  &Response{Status: "ok", Line: "ok"},
		},
		{
			name:  "empty line",
			input: "\n",
			want:  &Response{Status: "", Line: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ReadResponse(bufio.NewReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			require.Equal(t, tt.want, resp)
		})
	}
}

func TestReadResponse_PartialReads(t *testing.T) {
	r := bufio.NewReader(iotest.OneByteReader(strings.NewReader("OK hello world\n")))

	resp, err := ReadResponse(r)
	require.NoError(t, err)
	require.Equal(t, "hello world", resp.Token)
}

func TestReadResponse_CoalescedLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("OK\nOK Alice\nERROR KEY_NOT_FOUND\n"))

	first, err := ReadResponse(r)
	require.NoError(t, err)
	require.True(t, first.IsOK())

	second, err := ReadResponse(r)
	require.NoError(t, err)
	require.Equal(t, "Alice", second.Token)

	third, err := ReadResponse(r)
	require.NoError(t, err)
	require.True(t, third.IsNotFound())

	_, err = ReadResponse(r)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadResponse_LineLongerThanBuffer(t *testing.T) {
	value := strings.Repeat("abcdefgh", 100)
	r := bufio.NewReaderSize(strings.NewReader("OK "+value+"\nOK\n"), 16)

	resp, err := ReadResponse(r)
	require.NoError(t, err)
	require.Equal(t, value, resp.Token)

	next, err := ReadResponse(r)
	require.NoError(t, err)
	require.True(t, next.IsOK())
}

func TestReadResponse_EOF(t *testing.T) {
	t.Run("before any byte", func(t *testing.T) {
		_, err := ReadResponse(bufio.NewReader(strings.NewReader("")))
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("mid line", func(t *testing.T) {
		_, err := ReadResponse(bufio.NewReader(strings.NewReader("OK Ali")))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("mid long line", func(t *testing.T) {
		r := bufio.NewReaderSize(strings.NewReader("OK "+strings.Repeat("x", 64)), 16)
		_, err := ReadResponse(r)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("mid line on buffer boundary", func(t *testing.T) {
		// Exactly one full buffer, then EOF with nothing more
		r := bufio.NewReaderSize(strings.NewReader("OK "+strings.Repeat("x", 13)), 16)
		_, err := ReadResponse(r)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestReadLine_MaxLength(t *testing.T) {
	t.Run("at limit", func(t *testing.T) {
		line := strings.Repeat("x", MaxLineLength)
		got, err := ReadLine(bufio.NewReader(strings.NewReader(line + "\n")))
		require.NoError(t, err)
		require.Len(t, got, MaxLineLength)
	})

	t.Run("over limit", func(t *testing.T) {
		line := strings.Repeat("x", MaxLineLength+1)
		_, err := ReadLine(bufio.NewReader(strings.NewReader(line + "\n")))
		require.ErrorIs(t, err, ErrLineTooLong)
	})

	t.Run("no terminator", func(t *testing.T) {
		// Stops after the limit instead of buffering the whole stream
		sr := strings.NewReader(strings.Repeat("x", 4*MaxLineLength))
		_, err := ReadLine(bufio.NewReader(sr))
		require.ErrorIs(t, err, ErrLineTooLong)
		require.Positive(t, sr.Len())
	})
}

func TestReadResponse_ReaderError(t *testing.T) {
	r := bufio.NewReader(iotest.ErrReader(iotest.ErrTimeout))

	_, err := ReadResponse(r)
	require.ErrorIs(t, err, iotest.ErrTimeout)
}

func BenchmarkReadResponse(b *testing.B) {
	input := "OK hello world\n"
	sr := strings.NewReader(input)
	r := bufio.NewReader(sr)

	for b.Loop() {
		sr.Reset(input)
		r.Reset(sr)
		_, _ = ReadResponse(r)
	}
}
