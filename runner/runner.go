// Package runner drives the per-tick observe/decide/act loop against a
// live server connection: it owns the sleep budget, the request
// cadence, and the anti-cheat chat warning, handing every decision off
// to behavior.Core.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/drone-battle/core/behavior"
	"github.com/drone-battle/core/config"
	"github.com/drone-battle/core/field"
	"github.com/drone-battle/core/telemetry"
	"github.com/drone-battle/core/transport"
)

// Runner owns one drone's connection, behavior core, and bookkeeping
// for the server's lifecycle states.
type Runner struct {
	conn *transport.Conn
	core *behavior.Core
	cfg  config.Config
	sink *telemetry.Sink
	id   string

	playing      bool
	idleTicks    int
	thinkingTime time.Duration
	lastAction   field.Action

	lastShooter  string
	lastDamageAt time.Time
}

// New builds a Runner over an already-dialed connection.
func New(conn *transport.Conn, cfg config.Config, sink *telemetry.Sink) *Runner {
	return &Runner{
		conn: conn,
		core: behavior.NewCore(cfg.Timing()),
		cfg:  cfg,
		sink: sink,
		id:   cfg.Name,
	}
}

// Run blocks until ctx is cancelled, driving the GAME / non-GAME loop
// described for the reference client: in GAME it sleeps a budget based
// on the last action sent, asks for a fresh observation/status/game
// status after every action, and acts; outside GAME it sleeps longer,
// polls the scoreboard every fifth idle tick, and announces "gg" once
// on the GAME-to-non-GAME edge.
func (r *Runner) Run(ctx context.Context) error {
	r.core.Field.Restart()
	r.announceIdentity()

	inbox := make(chan transport.Message, 64)
	readErr := make(chan error, 1)
	go func() {
		readErr <- r.conn.ReadLoop(ctx, func(m transport.Message) { inbox <- m })
	}()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.send(transport.RequestGoodbye)
			return ctx.Err()
		case err := <-readErr:
			return fmt.Errorf("connection closed: %w", err)
		case msg := <-inbox:
			r.ingest(msg)
		case <-ticker.C:
			if err := r.tick(); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) tick() error {
	if r.core.Status.State == field.Game {
		return r.tickPlaying()
	}
	return r.tickIdle()
}

func (r *Runner) tickPlaying() error {
	budget := r.cfg.NormalTimer
	if r.lastAction == field.Shoot {
		budget = r.cfg.MinTimer
	}
	r.sleep(budget - r.thinkingTime)

	if !r.playing {
		r.playing = true
		r.restart()
	}

	start := time.Now()
	action := r.core.Tick()
	r.lastAction = action
	if frame, ok := transport.ActionFrame(action); ok {
		if err := r.conn.Send(frame); err != nil {
			return err
		}
	}
	r.afterAction()
	r.thinkingTime = time.Since(start)
	r.pushSnapshot()
	return nil
}

func (r *Runner) tickIdle() error {
	r.sleep(r.cfg.SlowTimer)
	if r.playing {
		r.send(transport.SayFrame("gg"))
	}
	r.playing = false
	r.core.Reset()

	r.idleTicks++
	if r.idleTicks == 5 {
		r.send(transport.RequestScoreboard)
		r.idleTicks = 0
	}
	r.send(transport.RequestGameStatus)
	return nil
}

// sleep advances the field clock by duration and blocks for it, mirroring
// the reference client's coupling of wall-clock sleep to tick decay.
func (r *Runner) sleep(d time.Duration) {
	r.core.Field.Tick(d)
	if d > 0 {
		time.Sleep(d)
	}
}

func (r *Runner) afterAction() {
	r.core.Obs.Reset()
	r.send(transport.RequestObservation)
	r.send(transport.RequestUserStatus)
	r.send(transport.RequestGameStatus)
}

func (r *Runner) restart() {
	r.send(transport.RequestUserStatus)
	r.send(transport.RequestObservation)
	r.sleep(r.cfg.NormalTimer)
}

func (r *Runner) announceIdentity() {
	r.send(transport.NameFrame(r.cfg.Name))
	r.send(transport.ColorFrame(transport.Color{R: r.cfg.DefaultColor.R, G: r.cfg.DefaultColor.G, B: r.cfg.DefaultColor.B}))
}

func (r *Runner) send(frame string) {
	if err := r.conn.Send(frame); err != nil {
		slog.Warn("send failed", "runner", r.id, "frame", frame, "error", err)
	}
}

func (r *Runner) pushSnapshot() {
	if r.sink == nil {
		return
	}
	r.sink.Publish(r.core.Field.Snapshot(), r.core.Status, r.core.CurrentState.String())
}

// ingest folds one decoded server message into the behavior core,
// logging the passthrough events the core itself never consults.
func (r *Runner) ingest(msg transport.Message) {
	switch msg.Kind {
	case transport.ObservationMsg:
		r.core.IngestObservation(msg.Observation)
	case transport.StatusMsg:
		r.core.IngestStatus(msg.Status)
	case transport.GameStatusMsg:
		r.core.Status.State = msg.GameStatus.State
	case transport.ScoreboardMsg:
		slog.Debug("scoreboard", "runner", r.id, "entries", len(msg.Scoreboard))
	case transport.NotificationMsg:
		slog.Info("notification", "runner", r.id, "text", msg.Text)
	case transport.PlayerJoinMsg:
		slog.Info("player joined", "runner", r.id, "name", msg.Text)
	case transport.PlayerLeftMsg:
		slog.Info("player left", "runner", r.id, "name", msg.Text)
	case transport.ChangeNameMsg:
		slog.Info("player renamed", "runner", r.id, "from", msg.OldName, "to", msg.NewName)
	case transport.HitMsg:
		r.core.IngestHit()
		slog.Info("hit", "runner", r.id, "target", msg.Text)
	case transport.DamageMsg:
		r.core.IngestDamage()
		r.antiCheat(msg.Text)
		slog.Info("damaged", "runner", r.id, "shooter", msg.Text)
	}
}

// antiCheat warns the lobby if the same shooter damages this drone twice
// faster than the server's configured minimum tick.
func (r *Runner) antiCheat(shooter string) {
	now := time.Now()
	if r.lastShooter == shooter && !r.lastDamageAt.IsZero() {
		elapsed := now.Sub(r.lastDamageAt)
		if elapsed < r.cfg.MinTimer {
			r.send(transport.SayFrame(fmt.Sprintf(
				"anticheat alert: %s hit me again after %d ms (allowed: %d ms)",
				shooter, elapsed.Milliseconds(), r.cfg.MinTimer.Milliseconds(),
			)))
		}
	}
	r.lastShooter = shooter
	r.lastDamageAt = now
}
