// Package planner builds paths over the field's grid: direction-aware A*
// search and the strategy layer (gold midpoint, best-safe-block,
// closest-powerup) that picks what to search for.
package planner

import "github.com/drone-battle/core/field"

// Node is an A* state: a coord paired with the facing direction the
// drone would have after reaching it.
type Node struct {
	Coord field.Coord
	Dir   field.Direction
}

// DistanceToGoal is the A* heuristic: Manhattan distance from the node's
// coord to goal. It is admissible under unit step costs; a step into a
// safe-overlay cell costs only 0.8, so across safe cells it can exceed
// the remaining cost and the path found is not guaranteed lowest-cost.
func (n Node) DistanceToGoal(goal field.Coord) float64 {
	return float64(n.Coord.Manhattan(goal))
}

// successor is one candidate move out of a node, paired with its edge
// cost.
type successor struct {
	node Node
	cost float64
}

// neighbours enumerates n's successors in (front, back, left, right)
// order, the tie-break order the planner relies on. Successors whose
// target cell is WALL, DANGER, or UNKNOWN are filtered out entirely —
// the planner never routes through unexplored or hazardous ground.
func neighbours(f *field.Field, n Node) []successor {
	out := make([]successor, 0, 4)

	front := n.Coord.Next(n.Dir)
	if passable(f, front) {
		out = append(out, successor{
			node: Node{Coord: front, Dir: n.Dir},
			cost: edgeCost(f, front, 1.0),
		})
	}

	back := n.Coord.Next(n.Dir.Opposite())
	if passable(f, back) {
		out = append(out, successor{
			node: Node{Coord: back, Dir: n.Dir},
			cost: edgeCost(f, back, 1.0+1.5),
		})
	}

	// Rotations never move the coord, so they're always passable.
	out = append(out, successor{node: Node{Coord: n.Coord, Dir: n.Dir.Left()}, cost: 1.0})
	out = append(out, successor{node: Node{Coord: n.Coord, Dir: n.Dir.Right()}, cost: 1.0})

	return out
}

func passable(f *field.Field, c field.Coord) bool {
	switch f.Get(c) {
	case field.Wall, field.Danger, field.Unknown:
		return false
	default:
		return true
	}
}

// edgeCost applies the safe-overlay discount and unsafe-overlay penalty
// to a base forward/backward step cost, keyed off the target cell.
func edgeCost(f *field.Field, target field.Coord, base float64) float64 {
	cost := base
	if f.IsSafe(target) {
		cost *= 0.8
	}
	if f.IsUnsafe(target) {
		cost += 10.0
	}
	return cost
}
