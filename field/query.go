package field

import "time"

// Pather is the minimal planning capability query.go needs without
// importing the planner package (which itself imports field) — it is
// satisfied by planner.Planner. Kept here as a narrow seam rather than a
// circular import.
type Pather interface {
	// ShortestPath reports the size of the path the planner finds from
	// (origin, dir) to dest, or ok=false if dest is unreachable. Size is
	// the path's step count, used for timing comparisons.
	ShortestPath(origin Coord, dir Direction, dest Coord) (size int, ok bool)
}

// Get returns the classification of c: WALL for any out-of-bounds coord,
// else the map's recorded value, defaulting to UNKNOWN.
func (f *Field) Get(c Coord) Position {
	if !c.InBounds() {
		return Wall
	}
	if p, ok := f.cells[c]; ok {
		return p
	}
	return Unknown
}

// IsSafe reports whether c is in the safe overlay.
func (f *Field) IsSafe(c Coord) bool {
	_, ok := f.safePositions[c]
	return ok
}

// IsUnsafe reports whether c is in the unsafe overlay.
func (f *Field) IsUnsafe(c Coord) bool {
	_, ok := f.unsafePositions[c]
	return ok
}

// HasGold reports whether any gold is currently tracked.
func (f *Field) HasGold() bool {
	return len(f.goldPositions) > 0
}

// HasPowerup reports whether any powerup is currently tracked.
func (f *Field) HasPowerup() bool {
	return len(f.powerupPositions) > 0
}

// GoldCoords returns the currently tracked gold coordinates, in no
// particular order.
func (f *Field) GoldCoords() []Coord {
	out := make([]Coord, 0, len(f.goldPositions))
	for c := range f.goldPositions {
		out = append(out, c)
	}
	return out
}

// PowerupCoords returns the currently tracked powerup coordinates, in no
// particular order.
func (f *Field) PowerupCoords() []Coord {
	out := make([]Coord, 0, len(f.powerupPositions))
	for c := range f.powerupPositions {
		out = append(out, c)
	}
	return out
}

// SafeCoords returns every coord currently in the safe overlay.
func (f *Field) SafeCoords() []Coord {
	out := make([]Coord, 0, len(f.safePositions))
	for c := range f.safePositions {
		out = append(out, c)
	}
	return out
}

// HasWallInLine reports whether any of the q-1 cells strictly between
// coord and the cell q steps away along dir is a WALL. Used to gate
// ATTACK on a clear line of fire.
func (f *Field) HasWallInLine(coord Coord, dir Direction, q int) bool {
	cur := coord
	for i := 1; i < q; i++ {
		cur = cur.Next(dir)
		if f.Get(cur) == Wall {
			return true
		}
	}
	return false
}

// HasGoldToCollect returns the gold cell with the shortest reachable path
// (and that path's size) among those that will have respawned in time,
// or ok=false if none qualifies.
func (f *Field) HasGoldToCollect(origin Coord, dir Direction, planner Pather) (CollectTarget, bool) {
	return f.hasSomethingToCollect(origin, dir, planner, f.goldPositions)
}

// HasPowerupToCollect is the powerup analogue of HasGoldToCollect.
func (f *Field) HasPowerupToCollect(origin Coord, dir Direction, planner Pather) (CollectTarget, bool) {
	return f.hasSomethingToCollect(origin, dir, planner, f.powerupPositions)
}

// CollectTarget names a reachable, soon-to-respawn resource.
type CollectTarget struct {
	Coord Coord
	Size  int
}

func (f *Field) hasSomethingToCollect(origin Coord, dir Direction, planner Pather, timers map[Coord]time.Duration) (CollectTarget, bool) {
	best := CollectTarget{}
	found := false

	for c, age := range timers {
		size, ok := planner.ShortestPath(origin, dir, c)
		if !ok {
			continue
		}
		timeToBorn := f.Timing.SpawnTimer - age
		if timeToBorn >= time.Duration(size)*f.Timing.NormalTimer {
			continue // will not have respawned by the time we arrive
		}
		if !found || size < best.Size {
			best = CollectTarget{Coord: c, Size: size}
			found = true
		}
	}
	return best, found
}

// GoldMidpoint returns the arithmetic mean of all known gold coords,
// memoized by the size of the gold set. If there is no gold, it returns
// spawn (or the origin if spawn is unknown).
func (f *Field) GoldMidpoint() Coord {
	if !f.HasGold() {
		if f.spawn != nil {
			return *f.spawn
		}
		return Coord{}
	}

	if f.midpoint.valid && f.midpoint.size == len(f.goldPositions) {
		return f.midpoint.coord
	}

	var sumX, sumY int
	for c := range f.goldPositions {
		sumX += int(c.X)
		sumY += int(c.Y)
	}
	n := len(f.goldPositions)
	mid := Coord{X: int16(sumX / n), Y: int16(sumY / n)}

	f.midpoint = midpointCache{size: n, coord: mid, valid: true}
	return mid
}
