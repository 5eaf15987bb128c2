package runner

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/drone-battle/core/config"
	"github.com/drone-battle/core/transport"
)

// newTestRunner dials a loopback listener so antiCheat's send path has a
// real connection to write into, and returns a channel carrying every
// frame the server side receives.
func newTestRunner(t *testing.T) (*Runner, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	conn, err := transport.Dial(context.Background(), ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	server := <-accepted
	t.Cleanup(func() { server.Close() })
	frames := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(server)
		for scanner.Scan() {
			frames <- scanner.Text()
		}
	}()

	cfg := config.Default()
	cfg.MinTimer = 100 * time.Millisecond
	return New(conn, cfg, nil), frames
}

func TestAntiCheatWarnsOnFastRepeatHit(t *testing.T) {
	r, frames := newTestRunner(t)

	r.lastShooter = "villain"
	r.lastDamageAt = time.Now().Add(-10 * time.Millisecond)

	// Confirm the setup falls inside antiCheat's warning window.
	elapsed := time.Since(r.lastDamageAt)
	if elapsed >= r.cfg.MinTimer {
		t.Fatalf("test setup invalid: elapsed %v already exceeds MinTimer %v", elapsed, r.cfg.MinTimer)
	}

	r.antiCheat("villain")

	if r.lastShooter != "villain" {
		t.Fatalf("expected lastShooter to remain villain, got %q", r.lastShooter)
	}
	if time.Since(r.lastDamageAt) > 50*time.Millisecond {
		t.Fatal("expected lastDamageAt to be refreshed to now")
	}
	select {
	case frame := <-frames:
		if !strings.HasPrefix(frame, "say;anticheat alert: villain") {
			t.Fatalf("expected an anticheat warning frame, got %q", frame)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an anticheat warning frame to be sent")
	}
}

func TestAntiCheatSilentOnSlowRepeatHit(t *testing.T) {
	r, frames := newTestRunner(t)

	r.lastShooter = "villain"
	r.lastDamageAt = time.Now().Add(-time.Second)

	r.antiCheat("villain")

	if r.lastShooter != "villain" {
		t.Fatalf("expected lastShooter to remain villain, got %q", r.lastShooter)
	}
	select {
	case frame := <-frames:
		t.Fatalf("expected no frame for a slow repeat hit, got %q", frame)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAntiCheatSilentOnDifferentShooter(t *testing.T) {
	r, frames := newTestRunner(t)

	r.lastShooter = "villain"
	r.lastDamageAt = time.Now()

	r.antiCheat("hero")

	if r.lastShooter != "hero" {
		t.Fatalf("expected lastShooter updated to hero, got %q", r.lastShooter)
	}
	select {
	case frame := <-frames:
		t.Fatalf("expected no frame for a different shooter, got %q", frame)
	case <-time.After(100 * time.Millisecond):
	}
}
