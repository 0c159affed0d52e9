// Package session represents one accepted client connection for the
// duration of its fixed read sequence.
//
// A Session owns the connection and the receive buffer.  Each Read
// overwrites the buffer; nothing is accumulated across reads.
package session

import (
	"net"
	"time"

	inerrors "tcpinspect/internal/errors"
	"tcpinspect/util"
)

// Session is a single ClientSession: the connection, the peer it came
// from, and the buffer bounded reads land in.
type Session struct {
	ID     int64
	Conn   net.Conn
	Peer   string // "address:port" as printed on the console
	Logger *util.Logger

	buf     []byte
	reads   int
	bytesIn int64
	started time.Time
}

// New creates a Session with a receive buffer of chunkSize bytes.
func New(id int64, conn net.Conn, chunkSize int, logger *util.Logger) *Session {
	return &Session{
		ID:      id,
		Conn:    conn,
		Peer:    util.PeerAddr(conn.RemoteAddr()),
		Logger:  logger,
		buf:     make([]byte, chunkSize),
		started: time.Now(),
	}
}

// Read performs one bounded receive of up to len(buffer) bytes and
// returns the slice of the buffer that was filled.  The slice is only
// valid until the next Read.
//
// A peer that has closed its write side yields an empty payload and a
// nil error.  timeout > 0 sets a deadline for this read alone.
func (s *Session) Read(timeout time.Duration) ([]byte, error) {
	s.reads++
	if timeout > 0 {
		if err := s.Conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, inerrors.Wrap("read", s.Peer, err)
		}
	}

	n, err := s.Conn.Read(s.buf)
	s.bytesIn += int64(n)
	payload := s.buf[:n]

	switch {
	case err == nil:
		return payload, nil
	case inerrors.IsPeerClosed(err):
		return payload, nil
	default:
		return payload, inerrors.Wrap("read", s.Peer, err)
	}
}

// CloseWrite shuts down the outbound half of the connection.  The read
// half stays open until Close.
func (s *Session) CloseWrite() error {
	type closeWriter interface{ CloseWrite() error }
	cw, ok := s.Conn.(closeWriter)
	if !ok {
		s.Logger.Debug("session #%d: %T has no write half to shut down", s.ID, s.Conn)
		return nil
	}
	if err := cw.CloseWrite(); err != nil {
		return inerrors.Wrap("shutdown", s.Peer, err)
	}
	return nil
}

// Close releases the socket.
func (s *Session) Close() error { return s.Conn.Close() }

// Reads returns the number of bounded reads performed so far.
func (s *Session) Reads() int { return s.reads }

// BytesIn returns the total bytes received over the session.
func (s *Session) BytesIn() int64 { return s.bytesIn }

// Duration returns the time since the session was accepted.
func (s *Session) Duration() time.Duration { return time.Since(s.started) }
