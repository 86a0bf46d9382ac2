// Package contour extracts iso-value lines from a 2D grid using marching squares.
//
// Grid samples sit at integer positions: column c is x = c, row r is y = r.
// Crossings are linearly interpolated along cell edges and the cell segments
// are joined into polylines through the edges they share.
package contour

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Point is a position in pixel coordinates
type Point struct {
	X, Y float64
}

// Path is a connected iso-line at a single level
type Path struct {
	Level  float64
	Points []Point

	// Closed is set when the line returns to its starting point
	Closed bool
}

// cell edges
const (
	bottom = iota
	right
	top
	left
)

// segments by corner case; bit 0 bottom-left, bit 1 bottom-right,
// bit 2 top-right, bit 3 top-left. Saddles (5, 10) are resolved separately.
var cases = [16][][2]int{
	0:  nil,
	1:  {{left, bottom}},
	2:  {{bottom, right}},
	3:  {{left, right}},
	4:  {{right, top}},
	6:  {{bottom, top}},
	7:  {{left, top}},
	8:  {{top, left}},
	9:  {{bottom, top}},
	11: {{right, top}},
	12: {{left, right}},
	13: {{bottom, right}},
	14: {{left, bottom}},
	15: nil,
}

type grid struct {
	m          mat.Matrix
	rows, cols int
	level      float64
}

type segment struct {
	a, b int // edge ids
}

// Extract returns the iso-lines of m at level.
// Cells with a NaN corner produce no segments.
func Extract(m mat.Matrix, level float64) []Path {
	rows, cols := m.Dims()
	if rows < 2 || cols < 2 || math.IsNaN(level) {
		return nil
	}
	g := grid{m: m, rows: rows, cols: cols, level: level}

	var segs []segment
	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols-1; x++ {
			segs = g.cellSegments(x, y, segs)
		}
	}
	return g.join(segs)
}

// ExtractAll runs Extract for each level in order
func ExtractAll(m mat.Matrix, levels []float64) []Path {
	var paths []Path
	for _, l := range levels {
		paths = append(paths, Extract(m, l)...)
	}
	return paths
}

func (g *grid) cellSegments(x, y int, segs []segment) []segment {
	v00 := g.m.At(y, x)
	v10 := g.m.At(y, x+1)
	v11 := g.m.At(y+1, x+1)
	v01 := g.m.At(y+1, x)
	if math.IsNaN(v00) || math.IsNaN(v10) || math.IsNaN(v11) || math.IsNaN(v01) {
		return segs
	}

	idx := 0
	if v00 >= g.level {
		idx |= 1
	}
	if v10 >= g.level {
		idx |= 2
	}
	if v11 >= g.level {
		idx |= 4
	}
	if v01 >= g.level {
		idx |= 8
	}

	pairs := cases[idx]
	switch idx {
	case 5, 10:
		above := (v00+v10+v11+v01)/4 >= g.level
		if (idx == 5) == above {
			pairs = [][2]int{{bottom, right}, {top, left}}
		} else {
			pairs = [][2]int{{left, bottom}, {right, top}}
		}
	}

	for _, p := range pairs {
		segs = append(segs, segment{a: g.edgeID(x, y, p[0]), b: g.edgeID(x, y, p[1])})
	}
	return segs
}

// edgeID numbers horizontal edges 2*(y*cols+x) and vertical edges one more,
// so neighbouring cells agree on the id of a shared edge
func (g *grid) edgeID(x, y, side int) int {
	switch side {
	case bottom:
		return 2 * (y*g.cols + x)
	case top:
		return 2 * ((y+1)*g.cols + x)
	case left:
		return 2*(y*g.cols+x) + 1
	default:
		return 2*(y*g.cols+x+1) + 1
	}
}

// crossing interpolates the level position along an edge
func (g *grid) crossing(id int) Point {
	n := id / 2
	x, y := n%g.cols, n/g.cols

	a := g.m.At(y, x)
	var b float64
	var dx, dy float64
	if id%2 == 0 {
		b = g.m.At(y, x+1)
		dx = 1
	} else {
		b = g.m.At(y+1, x)
		dy = 1
	}

	t := 0.5
	if a != b {
		t = (g.level - a) / (b - a)
	}
	return Point{X: float64(x) + t*dx, Y: float64(y) + t*dy}
}

func (g *grid) join(segs []segment) []Path {
	byEdge := make(map[int][]int, 2*len(segs))
	for i, s := range segs {
		byEdge[s.a] = append(byEdge[s.a], i)
		byEdge[s.b] = append(byEdge[s.b], i)
	}

	used := make([]bool, len(segs))
	var paths []Path

	walk := func(start int, from int) {
		pts := []Point{g.crossing(from)}
		cur, at := start, from
		for {
			used[cur] = true
			next := segs[cur].a
			if next == at {
				next = segs[cur].b
			}
			pts = append(pts, g.crossing(next))

			found := -1
			for _, j := range byEdge[next] {
				if !used[j] {
					found = j
					break
				}
			}
			if found < 0 {
				break
			}
			cur, at = found, next
		}
		first, last := pts[0], pts[len(pts)-1]
		paths = append(paths, Path{
			Level:  g.level,
			Points: pts,
			Closed: len(pts) > 2 && first == last,
		})
	}

	// open lines start at an edge used by a single segment
	for i, s := range segs {
		if used[i] {
			continue
		}
		if len(byEdge[s.a]) == 1 {
			walk(i, s.a)
		} else if len(byEdge[s.b]) == 1 {
			walk(i, s.b)
		}
	}
	for i, s := range segs {
		if !used[i] {
			walk(i, s.a)
		}
	}
	return paths
}
