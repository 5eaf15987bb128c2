package field

import (
	"testing"
	"time"
)

func testTiming() Timing {
	return Timing{NormalTimer: 100 * time.Millisecond, SpawnTimer: 15 * time.Second}
}

func TestSetPrecedence(t *testing.T) {
	f := New(testTiming())
	c := Coord{X: 5, Y: 5}

	f.Set(c, Danger, false)
	if got := f.Get(c); got != Danger {
		t.Fatalf("expected Danger on UNKNOWN, got %v", got)
	}

	// SAFE can overwrite DANGER, but WALL must not be overwritten by SAFE.
	f.Set(c, Safe, false)
	if got := f.Get(c); got != Safe {
		t.Fatalf("expected Safe to overwrite Danger, got %v", got)
	}
	if !f.IsSafe(c) {
		t.Fatal("expected c to join the safe overlay")
	}

	wallCoord := Coord{X: 6, Y: 6}
	f.Set(wallCoord, Wall, false)
	f.Set(wallCoord, Safe, false)
	if got := f.Get(wallCoord); got != Wall {
		t.Fatalf("SAFE must not overwrite WALL, got %v", got)
	}
}

func TestSetGoldNotOverwrittenByEmpty(t *testing.T) {
	f := New(testTiming())
	c := Coord{X: 1, Y: 1}
	f.Set(c, Gold, false)
	f.Set(c, Empty, false)
	if got := f.Get(c); got != Gold {
		t.Fatalf("EMPTY must not overwrite GOLD, got %v", got)
	}
}

func TestApplyObservationWallDiscovery(t *testing.T) {
	f := New(testTiming())
	status := PlayerStatus{Coord: Coord{X: 10, Y: 10}, Dir: North}
	obs := NewObservation()
	obs.IsBlocked = true

	changed := ApplyObservation(f, Front, status, obs, nil)
	if !changed {
		t.Fatal("expected mapChanged on wall discovery")
	}
	front := status.Coord.Next(North)
	if got := f.Get(front); got != Wall {
		t.Fatalf("expected WALL ahead, got %v", got)
	}
}

func TestApplyObservationTeleportMarksDanger(t *testing.T) {
	f := New(testTiming())
	last := Coord{X: 0, Y: 0}
	status := PlayerStatus{Coord: Coord{X: 20, Y: 20}, Dir: North}
	obs := NewObservation()

	changed := ApplyObservation(f, NoAction, status, obs, &last)
	if !changed {
		t.Fatal("expected mapChanged on teleport")
	}
	if got := f.Get(last); got != Danger {
		t.Fatalf("expected old coord marked DANGER, got %v", got)
	}
}

func TestApplyObservationStandingOnTreasure(t *testing.T) {
	f := New(testTiming())
	status := PlayerStatus{Coord: Coord{X: 3, Y: 3}, Dir: East}
	obs := NewObservation()
	obs.IsTreasure = true

	ApplyObservation(f, Front, status, obs, nil)
	if got := f.Get(status.Coord); got != Gold {
		t.Fatalf("expected GOLD underfoot, got %v", got)
	}
	if !f.HasGold() {
		t.Fatal("expected gold to be tracked")
	}
}

func TestTickEvictsStaleUnsafe(t *testing.T) {
	f := New(testTiming())
	c := Coord{X: 2, Y: 2}
	f.SetUnsafe(c)

	for i := 0; i < 7; i++ {
		if !f.IsUnsafe(c) {
			t.Fatalf("expected c still unsafe at tick %d", i)
		}
		f.Tick(time.Millisecond)
	}
	if f.IsUnsafe(c) {
		t.Fatal("expected unsafe entry evicted once count exceeds 7")
	}
}

func TestGoldMidpointMemoizes(t *testing.T) {
	f := New(testTiming())
	f.SetGold(Coord{X: 0, Y: 0})
	f.SetGold(Coord{X: 10, Y: 0})

	mid := f.GoldMidpoint()
	if mid != (Coord{X: 5, Y: 0}) {
		t.Fatalf("expected midpoint (5,0), got %v", mid)
	}

	// Adding a third gold coord must invalidate the cache.
	f.SetGold(Coord{X: 10, Y: 6})
	mid2 := f.GoldMidpoint()
	if mid2 == mid {
		t.Fatal("expected midpoint to recompute after gold set changed size")
	}
}

func TestMergeObservationPreservesUnconsumedLatches(t *testing.T) {
	prev := NewObservation()
	prev.IsHit = true
	prev.HasReadHit = false

	next := NewObservation()
	next.IsHit = false // fresh snapshot says no hit

	merged := MergeObservation(prev, next)
	if !merged.IsHit {
		t.Fatal("expected sticky IsHit to survive the merge")
	}
}
