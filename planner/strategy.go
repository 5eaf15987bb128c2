package planner

import (
	"math"

	"github.com/drone-battle/core/field"
)

// BestOfPaths runs A* from (origin, dir) to every candidate, skips
// unreachable ones, and returns the path with the extremal size:
// smallest when preferSmallest, largest otherwise. The first reachable
// candidate to reach a given extremal size wins ties, by iteration
// order of candidates.
func (p *Planner) BestOfPaths(origin field.Coord, dir field.Direction, candidates []field.Coord, preferSmallest bool) (*Path, bool) {
	var best *Path
	for _, c := range candidates {
		path, ok := p.FindPath(origin, dir, c)
		if !ok {
			continue
		}
		if best == nil {
			best = path
			continue
		}
		if preferSmallest && path.Size < best.Size {
			best = path
		} else if !preferSmallest && path.Size > best.Size {
			best = path
		}
	}
	return best, best != nil
}

// ClosestPowerup returns the destination of the shortest reachable path
// to any tracked powerup.
func (p *Planner) ClosestPowerup(origin field.Coord, dir field.Direction) (field.Coord, bool) {
	path, ok := p.BestOfPaths(origin, dir, p.Field.PowerupCoords(), true)
	if !ok {
		return field.Coord{}, false
	}
	return path.Dest, true
}

// BestBlockUsingMidpoint biases exploration toward the known gold
// midpoint while staying reachable: for each safe-overlay cell s, it
// scores 2*euclid(s, mid) + |path(origin->s)| and returns the path
// to the argmin. Cells with no path are skipped. The factor of 2 is
// preserved from the reference implementation (see DESIGN.md open
// questions) rather than "corrected".
func (p *Planner) BestBlockUsingMidpoint(origin field.Coord, dir field.Direction, mid field.Coord) (*Path, bool) {
	var best *Path
	bestScore := math.MaxFloat64

	for _, s := range p.Field.SafeCoords() {
		dx := float64(int(s.X) - int(mid.X))
		dy := float64(int(s.Y) - int(mid.Y))
		distMid := 2 * math.Sqrt(dx*dx+dy*dy)

		path, ok := p.FindPath(origin, dir, s)
		if !ok {
			continue
		}

		score := distMid + float64(path.Size)
		if score < bestScore {
			bestScore = score
			best = path
		}
	}
	return best, best != nil
}
