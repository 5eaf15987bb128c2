// Package field owns the drone's world model: coordinates, directions,
// the Field grid itself, and the update/query logic that keeps it in
// sync with observations from the game server.
package field

import "fmt"

// MapWidth and MapHeight bound the arena grid. Coordinates outside this
// range are always WALL on query.
const (
	MapWidth  = 59
	MapHeight = 34
)

// Coord is an integer grid position.
type Coord struct {
	X, Y int16
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Next returns the coord one step away from c in dir.
func (c Coord) Next(dir Direction) Coord {
	switch dir {
	case North:
		return Coord{X: c.X, Y: c.Y - 1}
	case East:
		return Coord{X: c.X + 1, Y: c.Y}
	case South:
		return Coord{X: c.X, Y: c.Y + 1}
	default: // West
		return Coord{X: c.X - 1, Y: c.Y}
	}
}

// Manhattan returns the L1 distance between c and o.
func (c Coord) Manhattan(o Coord) int {
	return absInt(int(c.X)-int(o.X)) + absInt(int(c.Y)-int(o.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InBounds reports whether c lies within the arena grid.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < MapWidth && c.Y >= 0 && c.Y < MapHeight
}

// Coords5x2Sides returns the deterministic 20-coord neighborhood used by
// RUN evasion: for NORTH/SOUTH, x offsets -2,-1,+1,+2 (c's own column
// excluded) by y offsets -2..+2; for EAST/WEST, the 90-degree rotation of
// the same band. Used exclusively to seed RUN's candidate escape cells.
func (c Coord) Coords5x2Sides(dir Direction) []Coord {
	out := make([]Coord, 0, 20)
	along := [...]int16{-2, -1, 0, 1, 2}
	across := [...]int16{-2, -1, 1, 2}
	switch dir {
	case North, South:
		for _, dy := range along {
			for _, dx := range across {
				out = append(out, Coord{X: c.X + dx, Y: c.Y + dy})
			}
		}
	default: // East, West: 90-degree rotation of the N/S band
		for _, dx := range along {
			for _, dy := range across {
				out = append(out, Coord{X: c.X + dx, Y: c.Y + dy})
			}
		}
	}
	return out
}
