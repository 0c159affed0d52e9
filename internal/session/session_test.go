package session

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inerrors "tcpinspect/internal/errors"
	"tcpinspect/util"
)

// tcpPair returns a connected server/client pair over loopback.
func tcpPair(t *testing.T) (server, client net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		done <- c
	}()

	client, err = net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	server = <-done
	require.NotNil(t, server)
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return server, client
}

func TestSession_Peer(t *testing.T) {
	server, client := tcpPair(t)
	sess := New(1, server, 1024, util.NewLogger(0))
	assert.Equal(t, client.LocalAddr().String(), sess.Peer)
}

func TestSession_ReadBounded(t *testing.T) {
	server, client := tcpPair(t)
	sess := New(1, server, 4, util.NewLogger(0))

	_, err := client.Write([]byte("abcdefgh"))
	require.NoError(t, err)

	got, err := sess.Read(0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 4)
	assert.Equal(t, "abcd"[:len(got)], string(got))
	assert.Equal(t, 1, sess.Reads())
	assert.Equal(t, int64(len(got)), sess.BytesIn())
}

func TestSession_ReadAfterPeerClose(t *testing.T) {
	server, client := tcpPair(t)
	sess := New(1, server, 1024, util.NewLogger(0))
	require.NoError(t, client.Close())

	for i := 0; i < 3; i++ {
		got, err := sess.Read(0)
		require.NoError(t, err, "read %d", i)
		assert.Empty(t, got)
	}
	assert.Equal(t, 3, sess.Reads())
}

func TestSession_ReadTimeout(t *testing.T) {
	server, _ := tcpPair(t)
	sess := New(1, server, 1024, util.NewLogger(0))

	_, err := sess.Read(50 * time.Millisecond)
	require.Error(t, err)
	assert.True(t, inerrors.IsTimeout(err))

	var ne *inerrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "read", ne.Op)
}

func TestSession_CloseWrite(t *testing.T) {
	server, client := tcpPair(t)
	sess := New(1, server, 1024, util.NewLogger(0))

	require.NoError(t, sess.CloseWrite())

	client.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	n, err := client.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.True(t, inerrors.IsPeerClosed(err), "client should see EOF, got %v", err)

	// The read half stays usable after the write shutdown.
	_, err = client.Write([]byte("late"))
	require.NoError(t, err)
	got, err := sess.Read(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "late", string(got))
}

func TestSession_BufferOverwritten(t *testing.T) {
	server, client := tcpPair(t)
	sess := New(1, server, 16, util.NewLogger(0))

	client.Write([]byte("first")) //nolint:errcheck
	a, err := sess.Read(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", string(a))

	client.Write([]byte("xy")) //nolint:errcheck
	b, err := sess.Read(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "xy", string(b))
}
