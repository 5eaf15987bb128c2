// Package telemetry serves a read-only websocket feed of the drone's
// current field and behavior state. It exists purely for external
// observation — graphics.rs's one job in the reference client — and is
// never consulted by the behavior core.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/drone-battle/core/field"
)

const (
	writeWait  = time.Second
	pushPeriod = 200 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Snapshot is one pushed frame: the bot's own status plus the current
// world model, mirroring the reference client's Data{bot,field} shape.
type Snapshot struct {
	ID    string      `json:"id"`
	Bot   BotInfo     `json:"bot"`
	Field FieldInfo   `json:"field"`
}

// BotInfo is the drone's self-reported status for display.
type BotInfo struct {
	X      int16  `json:"x"`
	Y      int16  `json:"y"`
	Dir    string `json:"dir"`
	Energy int    `json:"energy"`
	Score  int64  `json:"score"`
	State  string `json:"state"`
}

// FieldInfo is the world-model projection for display.
type FieldInfo struct {
	Map      [][3]int64 `json:"map"`      // [x, y, position-ordinal]
	Gold     [][3]int64 `json:"gold"`     // [x, y, age-ms]
	Powerup  [][3]int64 `json:"powerup"`  // [x, y, age-ms]
	Midpoint [2]int64   `json:"midpoint"`
}

// Sink holds the latest snapshot and fans it out to every connected
// websocket client, throttled to at most one push per pushPeriod.
type Sink struct {
	id   string
	mu   sync.Mutex
	last Snapshot
}

// NewSink builds a Sink identified by id (the drone's configured name).
func NewSink(id string) *Sink {
	return &Sink{id: id}
}

// Publish records the latest state. It never blocks on slow clients —
// each client's writer goroutine reads the most recent snapshot only.
func (s *Sink) Publish(fieldSnap field.Snapshot, status field.PlayerStatus, state string) {
	snap := Snapshot{
		ID: s.id,
		Bot: BotInfo{
			X:      status.Coord.X,
			Y:      status.Coord.Y,
			Dir:    status.Dir.String(),
			Energy: status.Energy,
			Score:  status.Score,
			State:  state,
		},
		Field: FieldInfo{
			Map:     make([][3]int64, 0, len(fieldSnap.Cells)),
			Gold:    make([][3]int64, 0, len(fieldSnap.Gold)),
			Powerup: make([][3]int64, 0, len(fieldSnap.Powerup)),
		},
	}

	for _, c := range fieldSnap.Cells {
		snap.Field.Map = append(snap.Field.Map, [3]int64{int64(c.Coord.X), int64(c.Coord.Y), int64(c.Position)})
	}
	for _, g := range fieldSnap.Gold {
		snap.Field.Gold = append(snap.Field.Gold, [3]int64{int64(g.Coord.X), int64(g.Coord.Y), g.AgeMS})
	}
	for _, p := range fieldSnap.Powerup {
		snap.Field.Powerup = append(snap.Field.Powerup, [3]int64{int64(p.Coord.X), int64(p.Coord.Y), p.AgeMS})
	}
	snap.Field.Midpoint = [2]int64{int64(fieldSnap.Midpoint.X), int64(fieldSnap.Midpoint.Y)}

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
}

// ServeMux registers the websocket handler (/ws) on mux.
func (s *Sink) ServeMux(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.serveWebsocket)
}

// ListenAndServe starts an HTTP server bound to addr exposing /ws. It
// blocks until the server errors or is shut down.
func (s *Sink) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.ServeMux(mux)
	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("telemetry serve: %w", err)
	}
	return nil
}

func (s *Sink) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("telemetry upgrade failed", "error", err)
		return
	}
	defer s.closeWebsocket(conn)

	ticker := time.NewTicker(pushPeriod)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		snap := s.last
		s.mu.Unlock()

		data, err := json.Marshal(snap)
		if err != nil {
			slog.Error("telemetry marshal failed", "error", err)
			return
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (s *Sink) closeWebsocket(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
}
