package transport

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
)

// Dispatch receives one parsed inbound Message. It must return quickly —
// long work belongs in the runner, not the read loop.
type Dispatch func(Message)

// Conn wraps a TCP connection to the game server, framing writes as
// newline-terminated ASCII and handing parsed frames to a Dispatch
// callback. Its ID exists purely for log correlation across
// reconnects — it is never sent over the wire.
type Conn struct {
	ID   uuid.UUID
	conn net.Conn
}

// Dial opens a TCP connection to addr.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Conn{ID: uuid.New(), conn: c}, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// Send writes one frame, newline-terminated. An empty frame is a no-op —
// callers use this to mean "send nothing" for actions with no wire
// representation.
func (c *Conn) Send(frame string) error {
	if frame == "" {
		return nil
	}
	if _, err := c.conn.Write([]byte(frame + "\n")); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// SendAction sends an action frame rendered by ActionFrame. The empty
// frame ActionFrame returns for NOTHING is silently skipped.
func (c *Conn) SendAction(frame string) error {
	return c.Send(frame)
}

// ReadLoop scans newline-delimited frames until ctx is cancelled or the
// connection errors, handing each parsed Message to dispatch. It owns
// the connection's read-side lifetime; callers still own Close.
func (c *Conn) ReadLoop(ctx context.Context, dispatch Dispatch) error {
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				err := <-errs
				if err != nil {
					return fmt.Errorf("read loop: %w", err)
				}
				return nil
			}
			for _, frame := range SplitFrames(line) {
				msg := ParseFrame(frame)
				if msg.Kind == Invalid {
					slog.Warn("dropped malformed frame", "conn", c.ID, "frame", frame)
					continue
				}
				dispatch(msg)
			}
		}
	}
}

// SetDeadline is a thin passthrough to the underlying connection's
// read/write deadline.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}
