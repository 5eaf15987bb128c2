package behavior

import (
	"testing"
	"time"

	"github.com/drone-battle/core/field"
)

func testTiming() field.Timing {
	return field.Timing{NormalTimer: 100 * time.Millisecond, SpawnTimer: 15 * time.Second}
}

func TestSelectStateTreasureBeatsEverything(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 10, State: field.Game}
	c.Obs.IsTreasure = true
	c.Obs.IsDamage = true

	if got := c.selectState(); got != Collect {
		t.Fatalf("expected COLLECT to take priority over damage, got %v", got)
	}
}

func TestSelectStateLowEnergyPowerupTriggersRecharge(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 50, State: field.Game}
	c.Obs.IsPowerup = true

	if got := c.selectState(); got != Recharge {
		t.Fatalf("expected RECHARGE when standing on a powerup at low energy, got %v", got)
	}
}

func TestSelectStateRunningCounterTakesPriority(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 90, State: field.Game}
	c.ticksRunning = 3

	if got := c.selectState(); got != Run {
		t.Fatalf("expected RUN while ticksRunning > 0, got %v", got)
	}
	if c.ticksRunning != 2 {
		t.Fatalf("expected ticksRunning to decrement, got %d", c.ticksRunning)
	}
}

func TestSelectStateDamageTriggersRun(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 90, State: field.Game}
	c.Obs.IsDamage = true

	if got := c.selectState(); got != Run {
		t.Fatalf("expected RUN on damage without an enemy in view, got %v", got)
	}
	if c.ticksRunning != 5 {
		t.Fatalf("expected ticksRunning armed to 5, got %d", c.ticksRunning)
	}
}

func TestSelectStateExploreDefault(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 100, State: field.Game}

	if got := c.selectState(); got != Explore {
		t.Fatalf("expected EXPLORE with no hazards/resources, got %v", got)
	}
}

func TestTickZeroEnergyYieldsNoAction(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 0, State: field.Game}

	if got := c.Tick(); got != field.NoAction {
		t.Fatalf("expected NOTHING at zero energy, got %v", got)
	}
}

func TestDoCollectPicksUpTreasureUnderfoot(t *testing.T) {
	c := NewCore(testTiming())
	c.Status = field.PlayerStatus{Coord: field.Coord{X: 5, Y: 5}, Dir: field.North, Energy: 50, State: field.Game}
	c.Obs.IsTreasure = true

	action := c.Tick()
	if action != field.Get {
		t.Fatalf("expected GET when standing on treasure, got %v", action)
	}
}

func TestReset(t *testing.T) {
	c := NewCore(testTiming())
	c.CurrentState = Attack
	c.ticksRunning = 4
	c.goingToPowerup = true

	c.Reset()

	if c.CurrentState != Explore {
		t.Fatalf("expected CurrentState reset to EXPLORE, got %v", c.CurrentState)
	}
	if c.ticksRunning != 0 || c.goingToPowerup {
		t.Fatal("expected FSM bookkeeping cleared on reset")
	}
}
