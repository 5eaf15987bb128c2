package field

import "time"

// Timing holds the timers the Field needs for resource re-arming and
// collectability checks. It mirrors the relevant subset of config.Config
// without importing it, keeping field dependency-free of the ambient stack.
type Timing struct {
	NormalTimer time.Duration
	SpawnTimer  time.Duration
}

// midpointCache memoizes gold_midpoint by the size of GoldPositions, so
// repeated calls within the same gold set don't re-walk the map.
type midpointCache struct {
	size  int
	coord Coord
	valid bool
}

// Field is the incrementally built world model. It is owned exclusively
// by the behavior core; every mutation goes through Update/Tick, every
// read through the Query methods.
type Field struct {
	Timing Timing

	cells            map[Coord]Position
	goldPositions    map[Coord]time.Duration
	powerupPositions map[Coord]time.Duration
	safePositions    map[Coord]struct{}
	unsafePositions  map[Coord]int

	spawn    *Coord
	midpoint midpointCache
}

// New creates an empty Field with the given timing.
func New(timing Timing) *Field {
	f := &Field{Timing: timing}
	f.reset()
	return f
}

func (f *Field) reset() {
	f.cells = make(map[Coord]Position)
	f.goldPositions = make(map[Coord]time.Duration)
	f.powerupPositions = make(map[Coord]time.Duration)
	f.safePositions = make(map[Coord]struct{})
	f.unsafePositions = make(map[Coord]int)
	f.spawn = nil
	f.midpoint = midpointCache{}
}

// Restart clears all mutable state, matching a game-state transition out
// of GAME. Called by the runner on every non-GAME tick.
func (f *Field) Restart() {
	f.reset()
}

// Spawn returns the first known EMPTY cell the agent stood on, or nil if
// none has been recorded yet.
func (f *Field) Spawn() *Coord {
	return f.spawn
}

// Snapshot is a read-only projection of Field state for telemetry. It must
// never be consulted by planning or behavior code — see telemetry.Sink.
type Snapshot struct {
	Cells    []CellSnapshot
	Gold     []ResourceSnapshot
	Powerup  []ResourceSnapshot
	Midpoint Coord
}

// CellSnapshot is one map entry for telemetry purposes.
type CellSnapshot struct {
	Coord    Coord
	Position Position
}

// ResourceSnapshot is one timed resource entry for telemetry purposes.
type ResourceSnapshot struct {
	Coord Coord
	AgeMS int64
}

// Snapshot builds a telemetry-facing copy of the current Field state.
func (f *Field) Snapshot() Snapshot {
	snap := Snapshot{
		Cells:   make([]CellSnapshot, 0, len(f.cells)),
		Gold:    make([]ResourceSnapshot, 0, len(f.goldPositions)),
		Powerup: make([]ResourceSnapshot, 0, len(f.powerupPositions)),
	}
	for c, p := range f.cells {
		snap.Cells = append(snap.Cells, CellSnapshot{Coord: c, Position: p})
	}
	for c, age := range f.goldPositions {
		snap.Gold = append(snap.Gold, ResourceSnapshot{Coord: c, AgeMS: age.Milliseconds()})
	}
	for c, age := range f.powerupPositions {
		snap.Powerup = append(snap.Powerup, ResourceSnapshot{Coord: c, AgeMS: age.Milliseconds()})
	}
	snap.Midpoint = f.GoldMidpoint()
	return snap
}
