// Package pathfinding finds shortest paths on a grid with A*, using
// 8-directional movement that never cuts a blocked corner.
package pathfinding

import "math"

// GridNode is a cell coordinate.
type GridNode struct {
	X, Y int
}

func (n GridNode) key() uint64 {
	return uint64(uint32(int32(n.X)))<<32 | uint64(uint32(int32(n.Y)))
}

// less orders nodes by X, then Y.
func (n GridNode) less(o GridNode) bool {
	if n.X != o.X {
		return n.X < o.X
	}
	return n.Y < o.Y
}

// Bounds is the size of a grid whose cells run from (0, 0) to
// (Width-1, Height-1).
type Bounds struct {
	Width, Height int
}

// Contains reports whether n lies inside the grid.
func (b Bounds) Contains(n GridNode) bool {
	return n.X >= 0 && n.X < b.Width && n.Y >= 0 && n.Y < b.Height
}

// NodeSet is a set of grid cells.
type NodeSet map[GridNode]struct{}

// NewNodeSet returns a set holding nodes.
func NewNodeSet(nodes ...GridNode) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

func (s NodeSet) Add(n GridNode) {
	s[n] = struct{}{}
}

func (s NodeSet) Has(n GridNode) bool {
	_, ok := s[n]
	return ok
}

func (s NodeSet) Clone() NodeSet {
	out := make(NodeSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Point is a world-space coordinate.
type Point struct {
	X, Y float64
}

// WorldToGrid returns the cell containing the world point (x, y) on a grid
// of square cells whose bottom-left corner sits at origin.
func WorldToGrid(x, y float64, origin Point, cellSize float64) GridNode {
	return GridNode{
		X: int(math.Floor((x - origin.X) / cellSize)),
		Y: int(math.Floor((y - origin.Y) / cellSize)),
	}
}

// GridToWorld returns the world-space centre of cell n.
func GridToWorld(n GridNode, origin Point, cellSize float64) Point {
	return Point{
		X: origin.X + float64(n.X)*cellSize + cellSize/2,
		Y: origin.Y + float64(n.Y)*cellSize + cellSize/2,
	}
}

// InflateObstacles returns the cells where the anchor (bottom-left cell) of
// a width x height agent may not stand because its footprint would cover a
// blocked cell. Searching the inflated set with a single-cell agent gives
// paths for the larger agent. Sizes below one count as one.
func InflateObstacles(blocked NodeSet, width, height int) NodeSet {
	width, height = max(width, 1), max(height, 1)
	if width == 1 && height == 1 {
		return blocked.Clone()
	}

	inflated := make(NodeSet, len(blocked)*width*height)
	for wall := range blocked {
		for dx := range width {
			for dy := range height {
				inflated.Add(GridNode{X: wall.X - dx, Y: wall.Y - dy})
			}
		}
	}
	return inflated
}
