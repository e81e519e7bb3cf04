package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSet(t *testing.T) {
	stored, err := DecodeSet(ParseResponse("OK"))
	require.NoError(t, err)
	assert.True(t, stored)

	for _, line := range []string{"OK 1", "OK ", "ERROR MISSING_ARGUMENTS", "ERROR KEY_NOT_FOUND", "STORED", ""} {
		stored, err := DecodeSet(ParseResponse(line))
		require.ErrorIs(t, err, ErrProtocolViolation, "line %q", line)
		assert.False(t, stored)
	}
}

func TestDecodeGet(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantValue string
		wantFound bool
		wantErr   bool
	}{
		{"value", "OK Alice", "Alice", true, false},
		{"value with spaces", "OK Alice Smith", "Alice Smith", true, false},
		{"empty value", "OK ", "", true, false},
		{"value looks like exists", "OK 1", "1", true, false},
		{"not found", "ERROR KEY_NOT_FOUND", "", false, false},
		{"bare OK", "OK", "", false, true},
		{"invalid command", "ERROR INVALID_COMMAND", "", false, true},
		{"missing arguments", "ERROR MISSING_ARGUMENTS", "", false, true},
		{"garbage", "VALUE Alice", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found, err := DecodeGet(ParseResponse(tt.line))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrProtocolViolation)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestDecodeDelete(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantDeleted bool
		wantErr     bool
	}{
		{"deleted", "OK", true, false},
		{"not found", "ERROR KEY_NOT_FOUND", false, false},
		{"OK with token", "OK 1", false, true},
		{"invalid command", "ERROR INVALID_COMMAND", false, true},
		{"garbage", "DELETED", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted, err := DecodeDelete(ParseResponse(tt.line))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrProtocolViolation)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}
}

func TestDecodeExists(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantExists bool
		wantErr    bool
	}{
		{"exists", "OK 1", true, false},
		{"absent", "OK 0", false, false},
		{"bare OK", "OK", false, true},
		{"other token", "OK 2", false, true},
		{"token with space", "OK 1 ", false, true},
		{"not found", "ERROR KEY_NOT_FOUND", false, true},
		{"invalid command", "ERROR INVALID_COMMAND", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := DecodeExists(ParseResponse(tt.line))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrProtocolViolation)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantExists, exists)
		})
	}
}

// An ERROR line either maps to not-found semantics or is a violation, never a success value.
func TestDecode_ErrorLinesNeverSucceed(t *testing.T) {
	codes := []string{"KEY_NOT_FOUND", "INVALID_COMMAND", "MISSING_ARGUMENTS", "OUT_OF_MEMORY", "", "1", "OK"}

	for _, code := range codes {
		line := "ERROR " + code
		resp := ParseResponse(line)
		notFound := code == string(CodeKeyNotFound)

		stored, err := DecodeSet(resp)
		assert.False(t, stored, line)
		assert.ErrorIs(t, err, ErrProtocolViolation, line)

		value, found, err := DecodeGet(resp)
		assert.False(t, found, line)
		assert.Empty(t, value, line)
		if notFound {
			assert.NoError(t, err, line)
		} else {
			assert.ErrorIs(t, err, ErrProtocolViolation, line)
		}

		deleted, err := DecodeDelete(resp)
		assert.False(t, deleted, line)
		if notFound {
			assert.NoError(t, err, line)
		} else {
			assert.ErrorIs(t, err, ErrProtocolViolation, line)
		}

		exists, err := DecodeExists(resp)
		assert.False(t, exists, line)
		assert.ErrorIs(t, err, ErrProtocolViolation, line)
	}
}

func TestViolationError(t *testing.T) {
	_, err := DecodeDelete(ParseResponse("ERROR INVALID_COMMAND"))

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, VerbDelete, violation.Verb)
	assert.Equal(t, CodeInvalidCommand, violation.Code)
	assert.Equal(t, "ERROR INVALID_COMMAND", violation.Line)
	assert.Contains(t, err.Error(), "DELETE")
	assert.False(t, IsConnectionFailure(err))
}
