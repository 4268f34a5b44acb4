// Package contour extracts ordered polyline contours from a binary edge
// image using Moore-neighbor boundary tracing.
package contour

import (
	"image"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// moore8 lists the 8-connected neighbor offsets in clockwise order
// starting from "west", the conventional starting direction for
// Moore-neighbor tracing.
var moore8 = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// TraceContours walks every connected edge-pixel chain in edgeImage and
// returns one ordered point sequence per chain. A starting-pixel
// visitation set prevents the same chain from being traced twice. One
// mm-space Point is emitted per pixel coordinate visited; callers treat
// image pixels as 1:1 with millimeter coordinates (the source image is
// expected to already be rasterized at the target canvas resolution).
func TraceContours(edgeImage *image.NRGBA) [][]stitch.Point {
	b := edgeImage.Bounds()
	w, h := b.Dx(), b.Dy()

	isEdge := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return edgeImage.Pix[edgeImage.PixOffset(b.Min.X+x, b.Min.Y+y)] > 0
	}

	visited := make([]bool, w*h)
	var contours [][]stitch.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !isEdge(x, y) || visited[y*w+x] {
				continue
			}
			path := traceOne(x, y, w, h, isEdge, visited)
			if len(path) > 0 {
				contours = append(contours, path)
			}
		}
	}
	return contours
}

// traceOne performs Moore-neighbor tracing starting at (sx, sy), which
// must already be known to be an edge pixel. It marks every pixel it
// visits in visited so later starting points don't retrace the same chain.
func traceOne(sx, sy, w, h int, isEdge func(x, y int) bool, visited []bool) []stitch.Point {
	mark := func(x, y int) { visited[y*w+x] = true }

	mark(sx, sy)
	path := []stitch.Point{{X: float64(sx), Y: float64(sy)}}

	// An isolated pixel (no edge neighbor) is its own single-point contour.
	hasNeighbor := false
	for _, d := range moore8 {
		if isEdge(sx+d[0], sy+d[1]) {
			hasNeighbor = true
			break
		}
	}
	if !hasNeighbor {
		return path
	}

	cx, cy := sx, sy
	// backtrack direction: the direction we arrived from, so the next
	// search starts just past it (standard Moore-neighbor convention).
	backtrack := 0
	for steps := 0; steps < w*h*8; steps++ {
		found := false
		for i := 0; i < 8; i++ {
			dirIdx := (backtrack + 1 + i) % 8
			d := moore8[dirIdx]
			nx, ny := cx+d[0], cy+d[1]
			if isEdge(nx, ny) {
				cx, cy = nx, ny
				backtrack = (dirIdx + 4) % 8
				found = true
				break
			}
		}
		if !found {
			break
		}
		if cx == sx && cy == sy {
			break
		}
		if !visited[cy*w+cx] {
			mark(cx, cy)
			path = append(path, stitch.Point{X: float64(cx), Y: float64(cy)})
		} else {
			// Rejoined a pixel already claimed by this same trace (a
			// figure-eight crossing); keep walking but don't duplicate it
			// in the output.
			continue
		}
	}
	return path
}
