package planner

import "github.com/drone-battle/core/field"

// Path is an ordered sequence of actions plus the coords visited along
// the way. Invariants: Size == len(Actions); each FRONT/BACK action
// consumes exactly one Coord; rotations consume none; Coords[0] ==
// origin; Coords[len(Coords)-1] == Dest.
type Path struct {
	Actions []field.Action
	Coords  []field.Coord
	Dest    field.Coord
	Size    int
}

// PopFirstAction removes the head action; if it was FRONT or BACK, it
// also pops the head coord. A no-op on an empty path.
func (p *Path) PopFirstAction() {
	if len(p.Actions) == 0 {
		return
	}
	head := p.Actions[0]
	p.Actions = p.Actions[1:]
	if head == field.Front || head == field.Back {
		if len(p.Coords) > 0 {
			p.Coords = p.Coords[1:]
		}
	}
	p.Size--
}

// GetFirst peeks the head action, or NOTHING if the path is empty.
func (p *Path) GetFirst() field.Action {
	if len(p.Actions) == 0 {
		return field.NoAction
	}
	return p.Actions[0]
}

// Remaining reports how many actions are left.
func (p *Path) Remaining() int {
	return p.Size
}

// FromNodes reconstructs a Path from a contiguous A* node sequence. It
// never returns nil for a non-empty input; a single-node input (origin
// == dest) yields an empty-action Path anchored on that node.
func FromNodes(nodes []Node) *Path {
	if len(nodes) == 0 {
		return nil
	}

	actions := make([]field.Action, 0, len(nodes))
	coords := []field.Coord{nodes[0].Coord}

	var prev *Node
	for i := range nodes {
		n := nodes[i]
		if prev == nil {
			prev = &nodes[i]
			continue
		}

		if n.Coord != prev.Coord {
			coords = append(coords, n.Coord)
		}

		switch {
		case prev.Coord.Next(prev.Dir) == n.Coord:
			actions = append(actions, field.Front)
		case prev.Coord.Next(prev.Dir.Opposite()) == n.Coord:
			actions = append(actions, field.Back)
		case prev.Dir.Left() == n.Dir:
			actions = append(actions, field.Left)
		case prev.Dir.Right() == n.Dir:
			actions = append(actions, field.Right)
		}

		prev = &nodes[i]
	}

	return &Path{
		Actions: actions,
		Coords:  coords,
		Dest:    nodes[len(nodes)-1].Coord,
		Size:    len(actions),
	}
}
