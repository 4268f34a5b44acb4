// Package planner turns contours into an ordered stitch sequence: an
// optional underlay, an angled scanline fill, per-contour outline
// stitches, and a uniform pull-compensation offset.
package planner

import (
	"math"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// bounds is an axis-aligned box over a set of points.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(contours [][]stitch.Point) (bounds, bool) {
	var bb bounds
	found := false
	for _, c := range contours {
		for _, p := range c {
			if !found {
				bb = bounds{p.X, p.Y, p.X, p.Y}
				found = true
				continue
			}
			if p.X < bb.minX {
				bb.minX = p.X
			}
			if p.X > bb.maxX {
				bb.maxX = p.X
			}
			if p.Y < bb.minY {
				bb.minY = p.Y
			}
			if p.Y > bb.maxY {
				bb.maxY = p.Y
			}
		}
	}
	return bb, found
}

func (bb bounds) center() stitch.Point {
	return stitch.Point{X: (bb.minX + bb.maxX) / 2, Y: (bb.minY + bb.maxY) / 2}
}

func (bb bounds) diagonal() float64 {
	dx := bb.maxX - bb.minX
	dy := bb.maxY - bb.minY
	return math.Sqrt(dx*dx + dy*dy)
}

// segmentIntersection returns the intersection of segment (p1,p2) with
// segment (p3,p4), and whether it falls within both segments (ua, ub in [0,1]).
func segmentIntersection(p1, p2, p3, p4 stitch.Point) (stitch.Point, bool) {
	d := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if d == 0 {
		return stitch.Point{}, false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / d
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / d
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return stitch.Point{}, false
	}
	return stitch.Point{X: p1.X + ua*(p2.X-p1.X), Y: p1.Y + ua*(p2.Y-p1.Y)}, true
}

// contourEdges returns the consecutive-vertex edges of a traced contour,
// treating it as a closed loop (edge tracing naturally ends near its
// start, so the implicit closing edge between the last and first vertex
// is included alongside the rest).
func contourEdges(c []stitch.Point) [][2]stitch.Point {
	if len(c) < 2 {
		return nil
	}
	edges := make([][2]stitch.Point, 0, len(c))
	for i := 0; i < len(c)-1; i++ {
		edges = append(edges, [2]stitch.Point{c[i], c[i+1]})
	}
	edges = append(edges, [2]stitch.Point{c[len(c)-1], c[0]})
	return edges
}

// interpolatePoints returns n-1 intermediate points plus the end point,
// equally spaced between start and end (start itself is not included;
// callers already emitted it via a Jump or the previous segment's end).
func interpolatePoints(start, end stitch.Point, spacing float64) []stitch.Point {
	length := start.Dist(end)
	if length == 0 {
		return []stitch.Point{end}
	}
	n := int(math.Ceil(length / spacing))
	if n < 1 {
		n = 1
	}
	pts := make([]stitch.Point, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, stitch.Point{
			X: start.X + (end.X-start.X)*t,
			Y: start.Y + (end.Y-start.Y)*t,
		})
	}
	return pts
}
