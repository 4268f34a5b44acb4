package planner

import (
	"math"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Input bundles what GenerateStitches needs: the traced contours and the
// sanitized settings driving density, fill angle, underlay, and pull
// compensation.
type Input struct {
	Contours [][]stitch.Point
	Settings stitch.Settings
}

// GenerateStitches implements the StitchPlanner stage: underlay (if
// requested) plus the angled main fill, then per-contour outline
// stitches, then a uniform pull-compensation offset.
func GenerateStitches(in Input) ([]stitch.StitchPoint, error) {
	if len(in.Contours) == 0 {
		return nil, stitch.New(stitch.KindNoContours, "planner: no contours to stitch")
	}

	s := in.Settings
	area := s.Width * s.Height
	targetCount := math.Ceil(area * s.Density)
	if targetCount > 15000 {
		targetCount = 15000
	}
	if targetCount < 1 {
		targetCount = 1
	}
	baseSpacing := math.Sqrt(area / targetCount)
	spacing := baseSpacing / s.Density
	if spacing < 0.3 {
		spacing = 0.3
	}

	color := s.Color

	var out []stitch.StitchPoint
	out = append(out, stitch.StitchPoint{Point: in.Contours[0][0], Type: stitch.Jump, Color: color})

	if s.UseUnderlay {
		underlayAngle := math.Mod(s.FillAngle+90, 360)
		out = append(out, scanlineFill(in.Contours, underlayAngle, spacing*2, color)...)
	}
	out = append(out, scanlineFill(in.Contours, s.FillAngle, spacing, color)...)

	for _, c := range in.Contours {
		out = append(out, outlineStitches(c, spacing, color)...)
	}

	last := out[len(out)-1]
	out = append(out, stitch.StitchPoint{Point: last.Point, Type: stitch.Jump, Color: color})

	applyPullCompensation(out, s.PullCompensation)
	return out, nil
}

// outlineStitches walks a contour's consecutive vertices: a Jump to the
// start, then equally-spaced Normal points along each segment at least as
// long as spacing (shorter segments are skipped).
func outlineStitches(c []stitch.Point, spacing float64, color string) []stitch.StitchPoint {
	if len(c) == 0 {
		return nil
	}
	out := []stitch.StitchPoint{{Point: c[0], Type: stitch.Jump, Color: color}}
	for i := 0; i < len(c)-1; i++ {
		start, end := c[i], c[i+1]
		if start.Dist(end) < spacing {
			continue
		}
		for _, p := range interpolatePoints(start, end, spacing) {
			out = append(out, stitch.StitchPoint{Point: p, Type: stitch.Normal, Color: color})
		}
	}
	return out
}

// applyPullCompensation translates every stitch in place by (+p, +p). This
// is a known simplification: real pull compensation extends each stitch
// along its own direction rather than applying a uniform offset.
func applyPullCompensation(stitches []stitch.StitchPoint, p float64) {
	if p == 0 {
		return
	}
	for i := range stitches {
		stitches[i].Point = stitches[i].Point.Add(p, p)
	}
}
