package pathfinding

import (
	"container/heap"

	"github.com/kamstrup/intmap"
)

const (
	straightCost = 10
	diagonalCost = 14
)

type direction struct {
	dx, dy int
	cost   int
}

var directions = [8]direction{
	{0, 1, straightCost},
	{0, -1, straightCost},
	{1, 0, straightCost},
	{-1, 0, straightCost},
	{1, 1, diagonalCost},
	{1, -1, diagonalCost},
	{-1, 1, diagonalCost},
	{-1, -1, diagonalCost},
}

// Heuristic is the octile distance between a and b in move-cost units.
func Heuristic(a, b GridNode) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return straightCost*(dx+dy) + (diagonalCost-2*straightCost)*min(dx, dy)
}

// Cost sums the move costs along path.
func Cost(path []GridNode) int {
	total := 0
	for i := 1; i < len(path); i++ {
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			total += diagonalCost
		} else {
			total += straightCost
		}
	}
	return total
}

// AStar returns a minimum-cost path from start to end, both included.
// Straight moves cost 10 and diagonal moves 14; a diagonal move is refused
// when either orthogonal cell next to it is blocked. The second result is
// false when end is blocked or unreachable. Equal inputs always give the
// same path.
func AStar(start, end GridNode, blocked NodeSet, bounds Bounds) ([]GridNode, bool) {
	if blocked.Has(end) {
		return nil, false
	}

	cameFrom := intmap.New[uint64, GridNode](64)
	gScore := intmap.New[uint64, int](64)
	gScore.Put(start.key(), 0)

	open := &openSet{}
	heap.Push(open, candidate{f: Heuristic(start, end), node: start})

	for open.Len() > 0 {
		current := heap.Pop(open).(candidate)
		if current.node == end {
			return reconstruct(cameFrom, start, end), true
		}

		g, _ := gScore.Get(current.node.key())
		if current.f > g+Heuristic(current.node, end) {
			// superseded by a cheaper route pushed later
			continue
		}

		for _, d := range directions {
			next := GridNode{X: current.node.X + d.dx, Y: current.node.Y + d.dy}
			if !bounds.Contains(next) || blocked.Has(next) {
				continue
			}

			if d.cost == diagonalCost {
				if blocked.Has(GridNode{X: next.X, Y: current.node.Y}) ||
					blocked.Has(GridNode{X: current.node.X, Y: next.Y}) {
					continue
				}
			}

			tentative := g + d.cost
			if known, ok := gScore.Get(next.key()); ok && tentative >= known {
				continue
			}

			cameFrom.Put(next.key(), current.node)
			gScore.Put(next.key(), tentative)
			heap.Push(open, candidate{f: tentative + Heuristic(next, end), node: next})
		}
	}

	return nil, false
}

// AStarSized searches for an agent whose footprint is width x height cells,
// anchored at its bottom-left cell.
func AStarSized(start, end GridNode, blocked NodeSet, bounds Bounds, width, height int) ([]GridNode, bool) {
	return AStar(start, end, InflateObstacles(blocked, width, height), bounds)
}

func reconstruct(cameFrom *intmap.Map[uint64, GridNode], start, end GridNode) []GridNode {
	path := []GridNode{end}
	current := end
	for current != start {
		prev, ok := cameFrom.Get(current.key())
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type candidate struct {
	f    int
	node GridNode
}

// openSet is a min-heap on f. Ties pop the larger coordinate first so
// the search order never depends on insertion order.
type openSet []candidate

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[j].node.less(o[i].node)
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(candidate)) }

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
