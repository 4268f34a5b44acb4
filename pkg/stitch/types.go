package stitch

import "math"

// Point is a 2D coordinate in millimeters (source space, produced by the
// planner). Format encoders work in integer 0.1mm machine units through
// machine.Units instead.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Finite reports whether both coordinates are finite (no NaN, no Inf).
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// StitchType enumerates needle actions.
type StitchType int

const (
	Normal StitchType = iota // needle penetrates at the destination
	Jump                     // needle lifts and travels without stitching
	Trim                     // cut thread tail
	Stop                     // pause for a color change
	End                      // terminate the pattern
)

func (t StitchType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Jump:
		return "jump"
	case Trim:
		return "trim"
	case Stop:
		return "stop"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// StitchPoint is a single needle command: where, and what kind of move.
type StitchPoint struct {
	Point
	Type  StitchType
	Color string // hex-RGB, e.g. "#FF0000"
}

// Dimensions is a canvas extent in millimeters.
type Dimensions struct {
	Width, Height float64
}

// Metadata carries descriptive, non-geometric pattern information.
type Metadata struct {
	Name   string
	Date   string // ISO 8601
	Format string
}

// Pattern is the immutable output of the conversion pipeline: an ordered
// stitch sequence plus the bookkeeping derived from it.
type Pattern struct {
	Stitches   []StitchPoint
	Colors     []string // distinct colors, order of first appearance
	Dimensions Dimensions
	Metadata   Metadata
}

// Bounds returns the axis-aligned bounding box over every stitch in p.
// The second return value is false if p has no stitches.
func (p *Pattern) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(p.Stitches) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = p.Stitches[0].X, p.Stitches[0].Y
	maxX, maxY = minX, minY
	for _, s := range p.Stitches[1:] {
		if s.X < minX {
			minX = s.X
		}
		if s.X > maxX {
			maxX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// ColorMode selects how ColorQuantizer maps source pixels onto the thread palette.
type ColorMode int

const (
	Grayscale ColorMode = iota
	Color
)

// CollectColors computes the set of distinct colors used by stitches, in
// order of first appearance, satisfying the "every stitch color appears in
// colors" invariant.
func CollectColors(stitches []StitchPoint) []string {
	seen := make(map[string]bool)
	var colors []string
	for _, s := range stitches {
		if s.Color == "" {
			continue
		}
		if !seen[s.Color] {
			seen[s.Color] = true
			colors = append(colors, s.Color)
		}
	}
	return colors
}
