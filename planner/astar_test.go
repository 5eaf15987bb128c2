package planner

import (
	"testing"
	"time"

	"github.com/drone-battle/core/field"
)

func openField(t *testing.T) *field.Field {
	t.Helper()
	f := field.New(field.Timing{NormalTimer: 100 * time.Millisecond, SpawnTimer: 15 * time.Second})
	for x := int16(0); x < 10; x++ {
		for y := int16(0); y < 10; y++ {
			f.Set(field.Coord{X: x, Y: y}, field.Safe, false)
		}
	}
	return f
}

func TestFindPathStraightLine(t *testing.T) {
	f := openField(t)
	p := New(f)

	path, ok := p.FindPath(field.Coord{X: 0, Y: 0}, field.North, field.Coord{X: 0, Y: 5})
	if !ok {
		t.Fatal("expected a path across open, safe terrain")
	}
	if path.Dest != (field.Coord{X: 0, Y: 5}) {
		t.Fatalf("unexpected dest %v", path.Dest)
	}
	if path.Size == 0 {
		t.Fatal("expected a non-trivial path")
	}
}

func TestFindPathUnreachableAcrossWall(t *testing.T) {
	f := openField(t)
	// Wall off column x=5 entirely so the two halves are disconnected.
	for y := int16(0); y < 10; y++ {
		f.Set(field.Coord{X: 5, Y: y}, field.Wall, true)
	}

	_, ok := p(f).FindPath(field.Coord{X: 0, Y: 0}, field.North, field.Coord{X: 9, Y: 0})
	if ok {
		t.Fatal("expected no path through a solid wall")
	}
}

func p(f *field.Field) *Planner { return New(f) }

func TestFindPathAvoidsUnsafeWhenSafeDetourExists(t *testing.T) {
	f := openField(t)
	// Mark the direct cell unsafe; a detour through safe cells should
	// still win on cost even though it takes more steps.
	f.SetUnsafe(field.Coord{X: 0, Y: 1})

	planner := New(f)
	path, ok := planner.FindPath(field.Coord{X: 0, Y: 0}, field.North, field.Coord{X: 0, Y: 2})
	if !ok {
		t.Fatal("expected a path to exist")
	}
	for _, c := range path.Coords {
		if c == (field.Coord{X: 0, Y: 1}) {
			t.Fatalf("expected A* to route around the unsafe cell when a detour exists, used path %v", path.Coords)
		}
	}
}

func TestShortestPathImplementsPather(t *testing.T) {
	f := openField(t)
	planner := New(f)
	var pa field.Pather = planner

	size, ok := pa.ShortestPath(field.Coord{X: 0, Y: 0}, field.North, field.Coord{X: 0, Y: 3})
	if !ok || size == 0 {
		t.Fatalf("expected a reachable path with nonzero size, got size=%d ok=%v", size, ok)
	}
}

func TestFromNodesSingleNodeIsEmptyPath(t *testing.T) {
	start := Node{Coord: field.Coord{X: 1, Y: 1}, Dir: field.North}
	path := FromNodes([]Node{start})
	if path == nil {
		t.Fatal("expected a non-nil path for single-node input")
	}
	if len(path.Actions) != 0 {
		t.Fatalf("expected no actions for a single-node path, got %v", path.Actions)
	}
}

func TestFromNodesNilOnEmptyInput(t *testing.T) {
	if FromNodes(nil) != nil {
		t.Fatal("expected nil path for empty node slice")
	}
}
