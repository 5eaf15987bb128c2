package planner

import (
	"container/heap"

	"github.com/drone-battle/core/field"
)

// Planner runs direction-aware A* searches over a Field. It holds no
// state of its own beyond the Field reference, so a single Planner can
// serve every search in a tick.
type Planner struct {
	Field *field.Field
}

// New returns a Planner over f.
func New(f *field.Field) *Planner {
	return &Planner{Field: f}
}

// FindPath runs A* from (origin, dir) to dest and returns the resulting
// Path, or ok=false if dest is unreachable.
func (p *Planner) FindPath(origin field.Coord, dir field.Direction, dest field.Coord) (*Path, bool) {
	nodes, ok := p.search(origin, dir, dest)
	if !ok {
		return nil, false
	}
	return FromNodes(nodes), true
}

// ShortestPath implements field.Pather so query-layer collectability
// checks can ask the planner for a path's length without themselves
// depending on the planner package (avoiding an import cycle).
func (p *Planner) ShortestPath(origin field.Coord, dir field.Direction, dest field.Coord) (int, bool) {
	path, ok := p.FindPath(origin, dir, dest)
	if !ok {
		return 0, false
	}
	return path.Size, true
}

// pqItem is one entry in the open set. index is the monotonic insertion
// counter used as a tie-break so the search is deterministic regardless
// of floating point cost ties or map iteration order.
type pqItem struct {
	node      Node
	g         float64 // cost from origin
	f         float64 // g + heuristic
	index     int
	heapIndex int
}

type priorityQueue []*pqItem

func (q priorityQueue) Len() int { return len(q) }

func (q priorityQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].index != q[j].index {
		return q[i].index < q[j].index
	}
	return nodeLess(q[i].node, q[j].node)
}

func (q priorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIndex = i
	q[j].heapIndex = j
}

func (q *priorityQueue) Push(x any) {
	item := x.(*pqItem)
	item.heapIndex = len(*q)
	*q = append(*q, item)
}

func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// nodeLess gives Nodes a total order (coord, then dir). The priority
// queue consults it only after f and the insertion index.
func nodeLess(a, b Node) bool {
	if a.Coord.X != b.Coord.X {
		return a.Coord.X < b.Coord.X
	}
	if a.Coord.Y != b.Coord.Y {
		return a.Coord.Y < b.Coord.Y
	}
	return a.Dir < b.Dir
}

// search runs the core A* loop and returns the node path from origin to
// dest, inclusive.
func (p *Planner) search(origin field.Coord, dir field.Direction, dest field.Coord) ([]Node, bool) {
	start := Node{Coord: origin, Dir: dir}

	cameFrom := make(map[Node]Node)
	gScore := map[Node]float64{start: 0}

	pq := make(priorityQueue, 0, 64)
	heap.Init(&pq)
	counter := 0
	heap.Push(&pq, &pqItem{node: start, g: 0, f: start.DistanceToGoal(dest), index: counter})
	counter++

	visited := make(map[Node]bool)

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*pqItem)
		if visited[current.node] {
			continue
		}
		visited[current.node] = true

		if current.node.Coord == dest {
			return reconstruct(cameFrom, current.node, start), true
		}

		for _, s := range neighbours(p.Field, current.node) {
			if visited[s.node] {
				continue
			}
			tentativeG := current.g + s.cost
			if existing, ok := gScore[s.node]; ok && tentativeG >= existing {
				continue
			}
			gScore[s.node] = tentativeG
			cameFrom[s.node] = current.node
			heap.Push(&pq, &pqItem{
				node:  s.node,
				g:     tentativeG,
				f:     tentativeG + s.node.DistanceToGoal(dest),
				index: counter,
			})
			counter++
		}
	}

	return nil, false
}

func reconstruct(cameFrom map[Node]Node, goal, start Node) []Node {
	path := []Node{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
