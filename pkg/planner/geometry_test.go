package planner

import (
	"math"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func TestBoundsOfEmptyContoursIsNotFound(t *testing.T) {
	if _, ok := boundsOf(nil); ok {
		t.Fatal("expected ok=false for no contours")
	}
}

func TestBoundsOfSquareGivesExpectedExtent(t *testing.T) {
	bb, ok := boundsOf([][]stitch.Point{squareContour()})
	if !ok {
		t.Fatal("expected bounds to be found")
	}
	if bb.minX != 0 || bb.minY != 0 || bb.maxX != 10 || bb.maxY != 10 {
		t.Fatalf("got bounds %+v, want (0,0)-(10,10)", bb)
	}
	if c := bb.center(); c.X != 5 || c.Y != 5 {
		t.Fatalf("got center %+v, want (5,5)", c)
	}
	wantDiag := math.Sqrt(200)
	if math.Abs(bb.diagonal()-wantDiag) > 1e-9 {
		t.Fatalf("got diagonal %v, want %v", bb.diagonal(), wantDiag)
	}
}

func TestSegmentIntersectionFindsCrossingPoint(t *testing.T) {
	p, ok := segmentIntersection(
		stitch.Point{X: 0, Y: 5}, stitch.Point{X: 10, Y: 5},
		stitch.Point{X: 5, Y: 0}, stitch.Point{X: 5, Y: 10},
	)
	if !ok {
		t.Fatal("expected segments to intersect")
	}
	if p.X != 5 || p.Y != 5 {
		t.Fatalf("got %+v, want (5,5)", p)
	}
}

func TestSegmentIntersectionParallelLinesDoNotIntersect(t *testing.T) {
	_, ok := segmentIntersection(
		stitch.Point{X: 0, Y: 0}, stitch.Point{X: 10, Y: 0},
		stitch.Point{X: 0, Y: 5}, stitch.Point{X: 10, Y: 5},
	)
	if ok {
		t.Fatal("expected parallel segments not to intersect")
	}
}

func TestSegmentIntersectionOutOfRangeIsRejected(t *testing.T) {
	_, ok := segmentIntersection(
		stitch.Point{X: 0, Y: 5}, stitch.Point{X: 2, Y: 5},
		stitch.Point{X: 5, Y: 0}, stitch.Point{X: 5, Y: 10},
	)
	if ok {
		t.Fatal("expected no intersection: the first segment doesn't reach x=5")
	}
}

func TestContourEdgesClosesTheLoop(t *testing.T) {
	c := []stitch.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	edges := contourEdges(c)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3 (including the closing edge)", len(edges))
	}
	last := edges[len(edges)-1]
	if last[0] != c[2] || last[1] != c[0] {
		t.Fatalf("closing edge = %+v, want (%+v -> %+v)", last, c[2], c[0])
	}
}

func TestContourEdgesSinglePointHasNoEdges(t *testing.T) {
	if edges := contourEdges([]stitch.Point{{X: 0, Y: 0}}); edges != nil {
		t.Fatalf("got %d edges, want none for a single point", len(edges))
	}
}

func TestInterpolatePointsEndsExactlyAtEnd(t *testing.T) {
	start := stitch.Point{X: 0, Y: 0}
	end := stitch.Point{X: 10, Y: 0}
	pts := interpolatePoints(start, end, 3)
	if len(pts) == 0 {
		t.Fatal("expected at least one interpolated point")
	}
	last := pts[len(pts)-1]
	if last != end {
		t.Fatalf("last interpolated point = %+v, want %+v", last, end)
	}
}

func TestInterpolatePointsZeroLengthReturnsEndOnly(t *testing.T) {
	p := stitch.Point{X: 3, Y: 3}
	pts := interpolatePoints(p, p, 5)
	if len(pts) != 1 || pts[0] != p {
		t.Fatalf("got %+v, want a single point %+v", pts, p)
	}
}
