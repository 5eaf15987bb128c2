package field

import "time"

// SetKind selects the cell(s) touched by SetCustom.
type SetKind byte

const (
	Around SetKind = iota
	FrontOf
	BackOf
)

// Set writes pos at c. With force, the write is unconditional and, for
// GOLD/POWERUP, also resets the corresponding age timer to zero. Without
// force, Set follows the precedence rules in order:
//
//   - no-op if the cell already equals pos;
//   - DANGER only overwrites UNKNOWN;
//   - SAFE only overwrites UNKNOWN or DANGER, and additionally joins the
//     safe overlay;
//   - EMPTY only overwrites when the cell isn't currently GOLD or POWERUP;
//   - any other transition leaves the safe overlay then writes.
func (f *Field) Set(c Coord, pos Position, force bool) {
	current := f.Get(c)

	if force {
		switch pos {
		case Powerup:
			f.SetPowerup(c)
		case Gold:
			f.SetGold(c)
		}
		f.cells[c] = pos
		return
	}

	if pos == current {
		return
	}

	switch pos {
	case Danger:
		if current == Unknown {
			f.cells[c] = pos
		}
		return
	case Safe:
		if current == Unknown || current == Danger {
			f.cells[c] = pos
			f.SetSafe(c)
		}
		return
	case Empty:
		if current != Gold && current != Powerup {
			if f.spawn == nil {
				spawn := c
				f.spawn = &spawn
			}
			f.cells[c] = pos
		}
		return
	}

	f.RemoveSafe(c)
	f.cells[c] = pos
}

// SetGold marks c as carrying gold and resets its age to zero.
func (f *Field) SetGold(c Coord) {
	f.goldPositions[c] = 0
	f.midpoint.valid = false
}

// SetPowerup marks c as carrying a powerup and resets its age to zero.
func (f *Field) SetPowerup(c Coord) {
	f.powerupPositions[c] = 0
}

// SetSafe joins c to the safe overlay.
func (f *Field) SetSafe(c Coord) {
	f.safePositions[c] = struct{}{}
}

// SetUnsafe joins c to the unsafe overlay with a fresh tick count.
func (f *Field) SetUnsafe(c Coord) {
	f.unsafePositions[c] = 1
}

// RemoveSafe evicts c from the safe overlay, if present.
func (f *Field) RemoveSafe(c Coord) {
	delete(f.safePositions, c)
}

// SetCustom writes pos to the cell(s) selected by kind: the four
// 4-neighbors for Around, or the single cell c.Next(dir)/c.Next(dir.Opposite())
// for FrontOf/BackOf. Writes are non-forcing.
func (f *Field) SetCustom(c Coord, kind SetKind, dir Direction, pos Position) {
	switch kind {
	case Around:
		f.Set(Coord{X: c.X + 1, Y: c.Y}, pos, false)
		f.Set(Coord{X: c.X - 1, Y: c.Y}, pos, false)
		f.Set(Coord{X: c.X, Y: c.Y + 1}, pos, false)
		f.Set(Coord{X: c.X, Y: c.Y - 1}, pos, false)
	case FrontOf:
		f.Set(c.Next(dir), pos, false)
	case BackOf:
		f.Set(c.Next(dir.Opposite()), pos, false)
	}
}

// ApplyObservation is the main reconciliation routine: it folds one
// tick's Observation (plus the previous action and current status) into
// the Field. It returns true if the map changed in a way that
// invalidates cached paths (hazard, wall discovery, or teleport).
func ApplyObservation(f *Field, prevAction Action, status PlayerStatus, obs Observation, lastCoord *Coord) bool {
	mapChanged := false
	c := status.Coord

	// Rule 1: teleport detection (flash-induced relocation).
	if lastCoord != nil && lastCoord.Manhattan(c) > 3 {
		f.Set(*lastCoord, Danger, true)
		mapChanged = true
	}

	// Rule 2: damage marks a 9-cell cross around the drone as unsafe.
	if obs.IsDamage {
		f.SetUnsafe(c)
		f.SetUnsafe(Coord{X: c.X - 1, Y: c.Y})
		f.SetUnsafe(Coord{X: c.X - 2, Y: c.Y})
		f.SetUnsafe(Coord{X: c.X + 1, Y: c.Y})
		f.SetUnsafe(Coord{X: c.X + 2, Y: c.Y})
		f.SetUnsafe(Coord{X: c.X, Y: c.Y - 1})
		f.SetUnsafe(Coord{X: c.X, Y: c.Y - 2})
		f.SetUnsafe(Coord{X: c.X, Y: c.Y + 1})
		f.SetUnsafe(Coord{X: c.X, Y: c.Y + 2})
	}

	// Rule 3: flash or breeze marks the surrounding cells as danger.
	if obs.IsFlash || obs.IsBreeze {
		f.SetCustom(c, Around, status.Dir, Danger)
		mapChanged = true
	}

	dangerInferred := obs.IsFlash || obs.IsBreeze

	// Rule 4: a block discovers a wall ahead (or behind, if we were
	// backing up).
	if obs.IsBlocked {
		if prevAction == Front {
			f.SetCustom(c, FrontOf, status.Dir, Wall)
		} else {
			f.SetCustom(c, BackOf, status.Dir, Wall)
		}
		mapChanged = true
	}

	// Rule 5: standing on a powerup.
	if obs.IsPowerup {
		f.RemoveSafe(c)
		f.Set(c, Powerup, false)
		f.SetPowerup(c)
	}

	// Rule 6: standing on treasure — symmetric to rule 5.
	if obs.IsTreasure {
		f.RemoveSafe(c)
		f.Set(c, Gold, false)
		f.SetGold(c)
	}

	// Rule 7: absent any inferred danger, the surroundings and the cell
	// just walked from/to are safe. Uses the same front-vs-back selection
	// as rule 4; Set's SAFE precedence (UNKNOWN/DANGER only) naturally
	// leaves a WALL pinned by rule 4 alone.
	if !dangerInferred {
		f.SetCustom(c, Around, status.Dir, Safe)
		if prevAction == Front {
			f.SetCustom(c, FrontOf, status.Dir, Safe)
		} else {
			f.SetCustom(c, BackOf, status.Dir, Safe)
		}
	}

	// Rule 8: no resource underfoot — plain empty cell, and re-arm any
	// stale resource entry that's been sitting past its spawn timer.
	if !obs.IsTreasure && !obs.IsPowerup {
		f.RemoveSafe(c)
		f.Set(c, Empty, false)
		reArmIfStale(f, c)
	}

	return mapChanged
}

// reArmIfStale resets a gold/powerup timer at c back to zero once its
// recorded age exceeds the spawn timer — the resource has respawned and
// our stale age estimate no longer reflects it.
func reArmIfStale(f *Field, c Coord) {
	if age, ok := f.goldPositions[c]; ok && age > f.Timing.SpawnTimer {
		f.SetGold(c)
	}
	if age, ok := f.powerupPositions[c]; ok && age > f.Timing.SpawnTimer {
		f.SetPowerup(c)
	}
}

// Tick advances all resource ages and unsafe-overlay countdowns by dur,
// the wall-clock duration slept since the previous tick. It never
// mutates the map itself — only overlays and timers.
func (f *Field) Tick(dur time.Duration) {
	for c, age := range f.goldPositions {
		f.goldPositions[c] = age + dur
	}
	for c, age := range f.powerupPositions {
		f.powerupPositions[c] = age + dur
	}
	for c, count := range f.unsafePositions {
		if count >= 7 {
			delete(f.unsafePositions, c)
			continue
		}
		f.unsafePositions[c] = count + 1
	}
}
