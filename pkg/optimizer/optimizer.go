// Package optimizer implements the StitchOptimizer stage: it removes
// redundant stitches without changing the shape or color sequence of the
// pattern.
package optimizer

import (
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const epsilon = 1e-6

func samePoint(a, b stitch.Point) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx > -epsilon && dx < epsilon && dy > -epsilon && dy < epsilon
}

// Optimize removes consecutive duplicate Normal points, collapses runs of
// consecutive Jump stitches down to a single Jump at the run's final
// destination, and rejects any non-finite coordinate. The first and last
// stitch positions are always preserved.
func Optimize(stitches []stitch.StitchPoint) ([]stitch.StitchPoint, error) {
	if len(stitches) == 0 {
		return nil, nil
	}
	for _, s := range stitches {
		if !s.Finite() {
			return nil, stitch.New(stitch.KindInvalidCoordinates, "optimizer: non-finite coordinate")
		}
	}

	out := make([]stitch.StitchPoint, 0, len(stitches))
	for i := 0; i < len(stitches); i++ {
		cur := stitches[i]

		if cur.Type == stitch.Jump {
			j := i
			for j+1 < len(stitches) && stitches[j+1].Type == stitch.Jump {
				j++
			}
			out = append(out, stitches[j])
			i = j
			continue
		}

		if cur.Type == stitch.Normal && len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Type == stitch.Normal && samePoint(prev.Point, cur.Point) {
				continue
			}
		}
		out = append(out, cur)
	}

	if len(out) > 0 {
		out[0] = stitches[0]
		out[len(out)-1] = stitches[len(stitches)-1]
	}
	return out, nil
}
