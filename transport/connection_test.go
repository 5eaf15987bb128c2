package transport

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestConnReadLoopDispatchesFrames(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := &Conn{conn: client}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	received := make(chan Message, 4)
	done := make(chan error, 1)
	go func() {
		done <- conn.ReadLoop(ctx, func(m Message) { received <- m })
	}()

	go func() {
		server.Write([]byte("s;1;2;north;game;0;100\n"))
	}()

	select {
	case msg := <-received:
		if msg.Kind != StatusMsg {
			t.Fatalf("expected StatusMsg, got %v", msg.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatched message")
	}

	cancel()
	<-done
}

func TestConnSendSkipsEmptyFrame(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := &Conn{conn: client}
	errs := make(chan error, 1)
	go func() { errs <- conn.Send("") }()

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("unexpected error sending empty frame: %v", err)
		}
	case <-time.After(100 * time.Millisecond):
		// net.Pipe writes block until read, so a timeout means Send wrote.
		t.Fatal("Send blocked writing an empty frame")
	}
}
