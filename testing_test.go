package kvline

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pior/kvline/internal/testutils"
)

// newMockClient returns a connected client whose socket is a scripted mock.
func newMockClient(t *testing.T, responses ...string) (*Client, *testutils.ConnectionMock) {
	t.Helper()

	mock := testutils.NewConnectionMock(responses...)
	client, err := New(Config{
		dial: func(ctx context.Context) (net.Conn, error) {
			return mock, nil
		},
	})
	require.NoError(t, err)
	require.NoError(t, client.Connect(context.Background()))

	return client, mock
}

// newServerClient returns a connected client to a fresh in-process server.
func newServerClient(t *testing.T) (*Client, *testutils.Server) {
	t.Helper()

	server := testutils.NewServer(t)
	client, err := New(Config{Host: server.Host(), Port: server.Port()})
	require.NoError(t, err)
	require.NoError(t, client.Connect(context.Background()))
	t.Cleanup(func() { client.Close() })

	return client, server
}
