package transport

import "github.com/drone-battle/core/field"

// Kind tags which variant a parsed Message carries.
type Kind byte

const (
	Invalid Kind = iota
	ObservationMsg
	StatusMsg
	PlayerMsg
	GameStatusMsg
	ScoreboardMsg
	NotificationMsg
	PlayerJoinMsg
	PlayerLeftMsg
	ChangeNameMsg
	HitMsg
	DamageMsg
)

// Message is a parsed inbound frame. Exactly one of the typed fields is
// populated, selected by Kind.
type Message struct {
	Kind Kind

	Observation field.Observation
	Status      field.PlayerStatus
	Player      PlayerInfo
	GameStatus  GameStatus
	Scoreboard  []ScoreboardEntry
	Text        string // notification text, join/left/hit/damage player name
	OldName     string // changename only
	NewName     string // changename only
}

// PlayerInfo is a passthrough sighting of another connected player —
// consumed only by the runner/telemetry for logging, never by behavior.
type PlayerInfo struct {
	Node  int64
	Name  string
	Coord field.Coord
	Dir   field.Direction
	State field.ServerState
	Color Color
}

// GameStatus is the server's reported match lifecycle state and clock.
type GameStatus struct {
	State field.ServerState
	Time  int64
}

// Color is an RGB triple as reported over the wire (no alpha).
type Color struct {
	R, G, B uint8
}

// ScoreboardEntry is one drone's row in a Scoreboard response.
type ScoreboardEntry struct {
	Name      string
	Connected bool
	Score     int64
	Energy    int
	Color     Color
}
