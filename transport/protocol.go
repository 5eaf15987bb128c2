// Package transport implements the line-oriented ASCII wire protocol
// spoken with the game server: newline-terminated frames over TCP,
// default port 8888.
package transport

import (
	"strconv"
	"strings"

	"github.com/drone-battle/core/field"
)

// DefaultPort is the server's default listening port.
const DefaultPort = 8888

// ActionFrame renders a to its outbound wire letter. NOTHING has no
// wire representation — the runner must not send a frame for it.
func ActionFrame(a field.Action) (string, bool) {
	switch a {
	case field.Front:
		return "w", true
	case field.Back:
		return "s", true
	case field.Left:
		return "a", true
	case field.Right:
		return "d", true
	case field.Get:
		return "t", true
	case field.Shoot:
		return "e", true
	default:
		return "", false
	}
}

// Request frames for the four pull-style queries.
const (
	RequestObservation = "o"
	RequestGameStatus  = "g"
	RequestUserStatus  = "q"
	RequestScoreboard  = "u"
	RequestGoodbye     = "quit"
)

// NameFrame, SayFrame, ColorFrame build the three metadata commands.
func NameFrame(name string) string { return "name;" + name }
func SayFrame(msg string) string   { return "say;" + msg }
func ColorFrame(c Color) string {
	return "color;" + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
}

// SplitFrames splits a raw read buffer into individual command lines,
// trimming trailing NUL/CR and discarding any line carrying the SOH/ETX
// control bytes the server occasionally interleaves.
func SplitFrames(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		trimmed := strings.Trim(line, "\x00\r\n")
		if trimmed == "" {
			continue
		}
		if strings.ContainsAny(trimmed, "\x01\x03") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// ParseFrame decodes one trimmed command line into a Message. Frames
// with the wrong field count for their tag decode as Invalid rather
// than panicking — a malformed frame is dropped, not fatal.
func ParseFrame(line string) Message {
	fields := strings.Split(line, ";")
	if len(fields) == 0 {
		return Message{Kind: Invalid}
	}

	switch fields[0] {
	case "o":
		return parseObservation(fields)
	case "s":
		return parseStatus(fields)
	case "player":
		return parsePlayer(fields)
	case "g":
		return parseGameStatus(fields)
	case "u":
		return parseScoreboard(fields)
	case "notification":
		if len(fields) == 2 {
			return Message{Kind: NotificationMsg, Text: fields[1]}
		}
	case "hello":
		if len(fields) == 2 {
			return Message{Kind: PlayerJoinMsg, Text: fields[1]}
		}
	case "goodbye":
		if len(fields) == 2 {
			return Message{Kind: PlayerLeftMsg, Text: fields[1]}
		}
	case "changename":
		if len(fields) == 3 {
			return Message{Kind: ChangeNameMsg, OldName: fields[1], NewName: fields[2]}
		}
	case "h":
		if len(fields) == 2 {
			return Message{Kind: HitMsg, Text: fields[1]}
		}
	case "d":
		if len(fields) == 2 {
			return Message{Kind: DamageMsg, Text: fields[1]}
		}
	}
	return Message{Kind: Invalid}
}

// parseObservation decodes the nine sensory booleans plus the signed
// enemy-front distance: "o;enemy;blocked;steps;breeze;flash;treasure;powerup;damage;hit;dist".
func parseObservation(fields []string) Message {
	if len(fields) != 11 {
		return Message{Kind: Invalid}
	}
	b := func(s string) bool { return s == "1" }
	obs := field.NewObservation()
	obs.IsEnemyFront = b(fields[1])
	obs.IsBlocked = b(fields[2])
	obs.IsSteps = b(fields[3])
	obs.IsBreeze = b(fields[4])
	obs.IsFlash = b(fields[5])
	obs.IsTreasure = b(fields[6])
	obs.IsPowerup = b(fields[7])
	obs.IsDamage = b(fields[8])
	obs.IsHit = b(fields[9])
	obs.DistanceEnemyFront = atoiOr(fields[10], -1)
	return Message{Kind: ObservationMsg, Observation: obs}
}

func parseStatus(fields []string) Message {
	if len(fields) != 7 {
		return Message{Kind: Invalid}
	}
	return Message{
		Kind: StatusMsg,
		Status: field.PlayerStatus{
			Coord:  field.Coord{X: int16(atoiOr(fields[1], -1)), Y: int16(atoiOr(fields[2], -1))},
			Dir:    field.ParseDirection(fields[3]),
			State:  field.ParseServerState(fields[4]),
			Score:  int64(atoiOr(fields[5], 0)),
			Energy: atoiOr(fields[6], 0),
		},
	}
}

func parsePlayer(fields []string) Message {
	if len(fields) != 8 {
		return Message{Kind: Invalid}
	}
	return Message{
		Kind: PlayerMsg,
		Player: PlayerInfo{
			Node:  int64(atoiOr(fields[1], 0)),
			Name:  fields[2],
			Coord: field.Coord{X: int16(atoiOr(fields[3], -1)), Y: int16(atoiOr(fields[4], -1))},
			Dir:   field.ParseDirection(fields[5]),
			State: field.ParseServerState(fields[6]),
			Color: parseColor(fields[7]),
		},
	}
}

func parseGameStatus(fields []string) Message {
	if len(fields) != 3 {
		return Message{Kind: Invalid}
	}
	return Message{
		Kind: GameStatusMsg,
		GameStatus: GameStatus{
			State: field.ParseServerState(fields[1]),
			Time:  int64(atoiOr(fields[2], -1)),
		},
	}
}

func parseScoreboard(fields []string) Message {
	entries := make([]ScoreboardEntry, 0, len(fields)-1)
	for _, s := range fields[1:] {
		parts := strings.Split(s, "#")
		if len(parts) != 4 && len(parts) != 5 {
			continue
		}
		entry := ScoreboardEntry{
			Name:      parts[0],
			Connected: parts[1] == "connected",
			Score:     int64(atoiOr(parts[2], -1)),
			Energy:    atoiOr(parts[3], 0),
		}
		if len(parts) == 5 {
			entry.Color = parseColor(parts[4])
		}
		entries = append(entries, entry)
	}
	return Message{Kind: ScoreboardMsg, Scoreboard: entries}
}

// parseColor decodes a "r;g;b" triple. Malformed input yields black,
// matching the reference client's safe default.
func parseColor(s string) Color {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return Color{}
	}
	return Color{
		R: uint8(atoiOr(parts[0], 0)),
		G: uint8(atoiOr(parts[1], 0)),
		B: uint8(atoiOr(parts[2], 0)),
	}
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
