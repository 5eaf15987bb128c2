package behavior

import (
	"github.com/drone-battle/core/field"
	"github.com/drone-battle/core/planner"
)

// Core is the behavior state machine: it owns the Field, the Planner
// over it, and the FSM's own bookkeeping (current state, cached path,
// tick counters). It is not safe for concurrent use — the runner is its
// single logical owner, per the core's cooperative single-threaded
// design.
type Core struct {
	Field   *field.Field
	Planner *planner.Planner

	Status field.PlayerStatus
	Obs    field.Observation

	PrevAction    field.Action
	CurrentAction field.Action

	CurrentState  State
	PreviousState State

	ticksRunning   int
	ticksAttacking int
	goingToPowerup bool

	currentPath      *planner.Path
	currentPathOwner State
	bufferPath       *planner.Path

	lastCoord  *field.Coord
	mapChanged bool
}

// NewCore builds a Core over a freshly constructed Field using timing.
func NewCore(timing field.Timing) *Core {
	f := field.New(timing)
	return &Core{
		Field:        f,
		Planner:      planner.New(f),
		Obs:          field.NewObservation(),
		CurrentState: Explore,
	}
}

// Reset clears the Field and all FSM bookkeeping, matching a game-state
// transition out of GAME.
func (c *Core) Reset() {
	c.Field.Restart()
	c.Obs = field.NewObservation()
	c.PrevAction = field.NoAction
	c.CurrentAction = field.NoAction
	c.CurrentState = Explore
	c.PreviousState = None
	c.ticksRunning = 0
	c.ticksAttacking = 0
	c.goingToPowerup = false
	c.currentPath = nil
	c.currentPathOwner = None
	c.bufferPath = nil
	c.lastCoord = nil
	c.mapChanged = false
}

// IngestStatus applies a decoded Status message.
func (c *Core) IngestStatus(s field.PlayerStatus) {
	c.Status = s
}

// IngestObservation folds a freshly decoded Observation snapshot into
// the current one, preserving any unconsumed Hit/Damage latch.
func (c *Core) IngestObservation(o field.Observation) {
	c.Obs = field.MergeObservation(c.Obs, o)
}

// IngestHit records a Hit event as a sticky, unconsumed latch.
func (c *Core) IngestHit() {
	c.Obs.IsHit = true
	c.Obs.HasReadHit = false
}

// IngestDamage records a Damage event as a sticky, unconsumed latch.
func (c *Core) IngestDamage() {
	c.Obs.IsDamage = true
	c.Obs.HasReadDamage = false
}

// Tick runs one observe-decide-act cycle and returns the action to send.
func (c *Core) Tick() field.Action {
	if c.Status.Energy <= 0 {
		c.CurrentAction = field.NoAction
		return c.CurrentAction
	}

	c.mapChanged = field.ApplyObservation(c.Field, c.PrevAction, c.Status, c.Obs, c.lastCoord)

	c.PreviousState = c.CurrentState
	c.CurrentState = c.selectState()

	switch c.CurrentState {
	case Attack:
		c.doAttack()
	case Run:
		c.doRun()
	case Collect:
		c.doCollect()
	case Recharge:
		c.doRecharge()
	default:
		c.doExplore()
	}

	if c.CurrentState != Attack {
		c.ticksAttacking = 0
	}

	coord := c.Status.Coord
	c.lastCoord = &coord
	c.PrevAction = c.CurrentAction

	return c.CurrentAction
}

// selectState is the guarded rule sequence that picks the FSM's next
// state. First match wins.
func (c *Core) selectState() State {
	if c.Obs.IsTreasure {
		return Collect
	}
	if c.Obs.IsPowerup && c.Status.Energy <= 70 {
		return Recharge
	}
	if c.ticksRunning > 0 {
		c.ticksRunning--
		return Run
	}
	if c.Obs.IsEnemyFront && c.ticksAttacking < 10 && c.Status.Energy > 30 &&
		!c.Field.HasWallInLine(c.Status.Coord, c.Status.Dir, c.Obs.DistanceEnemyFront) {
		return Attack
	}
	if (c.Obs.IsDamage && !c.Obs.IsEnemyFront) ||
		((c.Obs.IsEnemyFront || c.Obs.IsSteps) && c.Status.Energy < 30) {
		c.ticksRunning = 5
		return Run
	}
	if c.Status.Energy <= 80 {
		return Recharge
	}
	if c.Field.HasGold() {
		if target, ok := c.Field.HasGoldToCollect(c.Status.Coord, c.Status.Dir, c.Planner); ok {
			if path, ok := c.Planner.FindPath(c.Status.Coord, c.Status.Dir, target.Coord); ok {
				c.bufferPath = path
				return Collect
			}
		}
	}
	return Explore
}

func (c *Core) doAttack() {
	c.ticksAttacking++
	c.CurrentAction = field.Shoot
}

// doRun follows a cached RUN plan, takes the cheap breeze escape, or
// searches the 5x2-side neighborhood for the farthest reachable safe
// block — running far, not just far enough. Falls back to ATTACK if
// nothing is reachable at all.
func (c *Core) doRun() {
	if c.followCached(Run) {
		return
	}
	if c.Obs.IsBreeze {
		c.CurrentAction = field.Left
		return
	}

	candidates := filterTraversable(c.Field, c.Status.Coord.Coords5x2Sides(c.Status.Dir))
	if path, ok := c.Planner.BestOfPaths(c.Status.Coord, c.Status.Dir, candidates, false); ok {
		c.adopt(path, Run)
		return
	}

	c.CurrentState = Attack
	c.doAttack()
}

// doCollect picks up treasure underfoot, continues an in-flight COLLECT
// plan, or adopts the buffer path selectState prepared. On a planner
// miss it rotates to probe rather than idling — see DESIGN.md's Open
// Question decision on RUN/COLLECT fallbacks.
func (c *Core) doCollect() {
	if c.Obs.IsTreasure {
		c.CurrentAction = field.Get
		return
	}
	if c.currentPathOwner == Collect && !c.mapChanged && c.currentPath != nil && c.currentPath.Remaining() > 0 {
		c.follow()
		return
	}
	if c.bufferPath != nil {
		c.adopt(c.bufferPath, Collect)
		c.bufferPath = nil
		return
	}
	c.CurrentAction = field.Left
}

// doRecharge picks up a powerup underfoot, chases a ripening one,
// continues a cached plan, heads toward the nearest known powerup via
// the midpoint strategy, or delegates to EXPLORE.
func (c *Core) doRecharge() {
	if c.Obs.IsPowerup {
		c.CurrentAction = field.Get
		c.goingToPowerup = false
		return
	}
	if target, ok := c.Field.HasPowerupToCollect(c.Status.Coord, c.Status.Dir, c.Planner); ok {
		if path, ok := c.Planner.FindPath(c.Status.Coord, c.Status.Dir, target.Coord); ok {
			c.adopt(path, Recharge)
			c.goingToPowerup = true
			return
		}
	}
	if c.followCachedMin(Recharge, 1) {
		return
	}
	if c.Field.HasPowerup() {
		if powerupCoord, ok := c.Planner.ClosestPowerup(c.Status.Coord, c.Status.Dir); ok {
			if path, ok := c.Planner.BestBlockUsingMidpoint(c.Status.Coord, c.Status.Dir, powerupCoord); ok {
				c.adopt(path, Recharge)
				c.goingToPowerup = true
				return
			}
		}
	}
	c.goingToPowerup = false
	c.doExplore()
}

// doExplore continues a cached EXPLORE plan or adopts a fresh
// best-safe-block path toward the gold midpoint.
func (c *Core) doExplore() {
	if c.followCached(Explore) {
		return
	}
	mid := c.Field.GoldMidpoint()
	if path, ok := c.Planner.BestBlockUsingMidpoint(c.Status.Coord, c.Status.Dir, mid); ok {
		c.adopt(path, Explore)
		return
	}
	c.CurrentAction = field.NoAction
}

// followCached pops-and-follows currentPath if it belongs to owner, the
// map hasn't changed, and it has at least one remaining action. Reports
// whether it did so.
func (c *Core) followCached(owner State) bool {
	return c.followCachedMin(owner, 0)
}

// followCachedMin is followCached with an explicit minimum remaining
// action count required before reuse — RECHARGE requires strictly more
// than one remaining action left in its cached plan.
func (c *Core) followCachedMin(owner State, minRemaining int) bool {
	if c.currentPathOwner != owner || c.mapChanged || c.currentPath == nil || c.currentPath.Remaining() <= minRemaining {
		return false
	}
	c.follow()
	return true
}

func (c *Core) follow() {
	c.CurrentAction = c.currentPath.GetFirst()
	c.currentPath.PopFirstAction()
}

func (c *Core) adopt(path *planner.Path, owner State) {
	c.currentPath = path
	c.currentPathOwner = owner
	c.follow()
}

func filterTraversable(f *field.Field, coords []field.Coord) []field.Coord {
	out := make([]field.Coord, 0, len(coords))
	for _, c := range coords {
		switch f.Get(c) {
		case field.Wall, field.Danger:
			continue
		default:
			out = append(out, c)
		}
	}
	return out
}
