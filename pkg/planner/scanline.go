package planner

import (
	"math"
	"sort"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// scanlineFill sweeps a set of parallel lines at angle degrees across the
// bounding box of contours, intersects each line with every contour
// edge, and emits Jump+Normal runs between consecutive intersection
// pairs. Successive scanlines alternate sort direction (boustrophedon)
// so the planner doesn't have to jump back across the shape between rows.
func scanlineFill(contours [][]stitch.Point, angleDeg, spacing float64, color string) []stitch.StitchPoint {
	bb, ok := boundsOf(contours)
	if !ok || spacing <= 0 {
		return nil
	}
	diagonal := bb.diagonal()
	if diagonal == 0 {
		return nil
	}
	center := bb.center()

	theta := angleDeg * math.Pi / 180.0
	dx, dy := math.Cos(theta), math.Sin(theta)
	nx, ny := -math.Sin(theta), math.Cos(theta)

	var edges [][2]stitch.Point
	for _, c := range contours {
		edges = append(edges, contourEdges(c)...)
	}
	if len(edges) == 0 {
		return nil
	}

	numLines := int(math.Ceil(diagonal / spacing))
	var out []stitch.StitchPoint

	for i := -numLines; i <= numLines; i++ {
		linePoint := stitch.Point{
			X: center.X + float64(i)*spacing*nx,
			Y: center.Y + float64(i)*spacing*ny,
		}
		p1 := stitch.Point{X: linePoint.X - diagonal*dx, Y: linePoint.Y - diagonal*dy}
		p2 := stitch.Point{X: linePoint.X + diagonal*dx, Y: linePoint.Y + diagonal*dy}

		var hits []stitch.Point
		for _, e := range edges {
			if pt, ok := segmentIntersection(p1, p2, e[0], e[1]); ok {
				hits = append(hits, pt)
			}
		}
		if len(hits)%2 != 0 || len(hits) == 0 {
			continue
		}

		project := func(p stitch.Point) float64 {
			return (p.X-center.X)*dx + (p.Y-center.Y)*dy
		}
		ascending := i%2 == 0
		sort.Slice(hits, func(a, b int) bool {
			if ascending {
				return project(hits[a]) < project(hits[b])
			}
			return project(hits[a]) > project(hits[b])
		})

		for j := 0; j+1 < len(hits); j += 2 {
			start, end := hits[j], hits[j+1]
			out = append(out, stitch.StitchPoint{Point: start, Type: stitch.Jump, Color: color})
			for _, p := range interpolatePoints(start, end, spacing) {
				out = append(out, stitch.StitchPoint{Point: p, Type: stitch.Normal, Color: color})
			}
		}
	}
	return out
}
