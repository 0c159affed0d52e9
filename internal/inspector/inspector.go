// Package inspector implements the diagnostic accept loop: bind one
// listener, then for each client in turn print its address, perform a
// fixed number of bounded reads, print every payload, and shut down the
// write half before accepting the next client.
//
// The loop is strictly serial.  Accepting, reading and shutting down
// all happen on the goroutine that called Run, so a slow client holds
// up every client queued behind it.
package inspector

import (
	"context"
	"net"
	"sync"
	"time"

	"tcpinspect/config"
	inerrors "tcpinspect/internal/errors"
	"tcpinspect/internal/metrics"
	"tcpinspect/internal/retry"
	"tcpinspect/internal/session"
	"tcpinspect/internal/transport"
	"tcpinspect/util"
)

// Inspector is the ConnectionInspector.  The zero value is not usable;
// set at least Endpoint, Console and Logger.
type Inspector struct {
	Endpoint    transport.Endpoint
	Reads       int           // bounded reads per session
	ChunkSize   int           // receive buffer capacity
	ReadTimeout time.Duration // per read; 0 blocks forever
	FailFast    bool          // a read error stops Run instead of ending the session

	Console *Console
	Logger  *util.Logger
	Metrics *metrics.Collector // optional
	Backoff *retry.Backoff     // accept retry schedule; nil uses retry.AcceptBackoff.  OnRetry is overridden.

	// OnTransition, if set, is called synchronously on every state
	// change from the loop goroutine.
	OnTransition func(Transition)

	mu       sync.Mutex
	current  Transition
	sessions int64
}

// State returns the loop's current state.
func (in *Inspector) State() Transition {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.current
}

// Run binds the endpoint and serves until ctx is cancelled.  A bind
// failure is returned immediately and nothing is accepted.
func (in *Inspector) Run(ctx context.Context) error {
	ln, err := transport.Listen(ctx, in.Endpoint)
	if err != nil {
		return err
	}
	return in.Serve(ctx, ln)
}

// Serve runs the accept loop on an already bound listener and closes
// it on return.  It returns nil once ctx is cancelled.
func (in *Inspector) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	// Cancellation is the only way out of a blocked Accept.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	in.Console.Waiting(listenPort(ln))
	in.Logger.Verbose("listening on %s (backlog %d, %d reads of %d bytes per connection)",
		ln.Addr(), in.Endpoint.Backlog, in.reads(), in.chunkSize())
	defer func() {
		if in.Logger.Enabled(util.LogVerbose) {
			in.Logger.Verbose("metrics:\n%s", in.Metrics.JSON())
		}
	}()

	for {
		in.transition(WaitingForConnection, 0, 0)

		conn, err := in.accept(ctx, ln)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := in.inspect(ctx, conn); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// accept blocks for the next client, backing off on temporary errors.
func (in *Inspector) accept(ctx context.Context, ln net.Listener) (net.Conn, error) {
	b := retry.AcceptBackoff()
	if in.Backoff != nil {
		cp := *in.Backoff
		b = &cp
	}
	b.OnRetry = func(attempt int, wait time.Duration, err error) {
		in.Metrics.AcceptRetry()
		in.Logger.Warn("%v (attempt %d, retrying in %s)", err, attempt, wait.Truncate(time.Millisecond))
	}

	var conn net.Conn
	err := b.Do(ctx, func(_ int) error {
		c, err := ln.Accept()
		if err == nil {
			conn = c
			return nil
		}
		if ctx.Err() != nil || inerrors.IsClosed(err) {
			return retry.Permanent(inerrors.ErrListenerClosed)
		}
		nerr := inerrors.Wrap("accept", ln.Addr().String(), err)
		if !inerrors.IsRetryable(nerr) {
			return retry.Permanent(nerr)
		}
		return nerr
	})
	return conn, err
}

// inspect runs one session: announce the peer, perform the fixed read
// sequence, then shut down the write half.  The connection is closed
// on return.  An error is returned only when the server must stop.
func (in *Inspector) inspect(ctx context.Context, conn net.Conn) error {
	in.sessions++
	sess := session.New(in.sessions, conn, in.chunkSize(), in.Logger)
	defer sess.Close()

	in.Metrics.SessionOpened()
	defer in.Metrics.SessionClosed()

	// Unblock a pending read when the process is asked to stop.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now()) //nolint:errcheck
	})
	defer stop()

	in.Console.Connection(sess.Peer)

	reads := in.reads()
	for n := 1; n <= reads; n++ {
		in.transition(ReadingChunk, n, sess.ID)
		// A fresh read deadline would override the one set on cancel.
		if ctx.Err() != nil {
			return nil
		}

		payload, err := sess.Read(in.ReadTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			in.Metrics.RecordError(err.Error())
			if in.FailFast {
				return err
			}
			cause := "read failed"
			switch {
			case inerrors.IsPeerReset(err):
				cause = "peer reset"
			case inerrors.IsTimeout(err):
				cause = "read timed out"
			}
			in.Logger.Error("%v (%s; session #%d abandoned after %d of %d reads)",
				err, cause, sess.ID, n-1, reads)
			break
		}

		in.Metrics.ReadCompleted(len(payload))
		in.Console.Received(payload)
		in.Logger.Debug("session #%d read %d: %d bytes", sess.ID, n, len(payload))
	}

	in.transition(ShuttingDown, 0, sess.ID)
	if err := sess.CloseWrite(); err != nil {
		// Expected when the peer already reset the connection.
		in.Logger.Warn("%v", err)
	} else {
		in.Metrics.WriteShutdown()
	}

	in.Logger.Verbose("session #%d from %s: %d reads, %d bytes in %s",
		sess.ID, sess.Peer, sess.Reads(), sess.BytesIn(), sess.Duration().Truncate(time.Millisecond))
	return nil
}

func (in *Inspector) transition(s State, chunk int, id int64) {
	t := Transition{State: s, Chunk: chunk, Session: id}
	in.mu.Lock()
	in.current = t
	in.mu.Unlock()

	in.Logger.Debug("state → %s", t)
	if in.OnTransition != nil {
		in.OnTransition(t)
	}
}

func (in *Inspector) reads() int {
	if in.Reads > 0 {
		return in.Reads
	}
	return config.DefaultReadCount
}

func (in *Inspector) chunkSize() int {
	if in.ChunkSize > 0 {
		return in.ChunkSize
	}
	return config.DefaultChunkSize
}

func listenPort(ln net.Listener) int {
	if a, ok := ln.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}
