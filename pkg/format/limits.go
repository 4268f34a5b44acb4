// Package format dispatches a finished pattern to the binary encoder for a
// named machine embroidery format, after enforcing that format's limits and
// remapping colors onto the thread palette.
package format

import (
	"strings"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Limits bounds what a single format's container can represent.
type Limits struct {
	MaxStitches  int
	MaxColors    int
	MaxDimension float64 // mm, per axis
}

// limitsTable holds the published per-format ceilings. Figures come from
// each format's documented machine constraints, not from any single
// vendor's implementation quirks. dst/exp/pat/qcc are single-color,
// 400mm-field formats; pes/jef/vp3/hus support multi-color designs over a
// smaller 260mm field, except jef's tighter 65535-stitch ceiling.
var limitsTable = map[string]Limits{
	"dst": {MaxStitches: 999999, MaxColors: 1, MaxDimension: 400},
	"pes": {MaxStitches: 100000, MaxColors: 99, MaxDimension: 260},
	"jef": {MaxStitches: 65535, MaxColors: 99, MaxDimension: 260},
	"exp": {MaxStitches: 999999, MaxColors: 1, MaxDimension: 400},
	"vp3": {MaxStitches: 100000, MaxColors: 99, MaxDimension: 260},
	"hus": {MaxStitches: 100000, MaxColors: 99, MaxDimension: 260},
	"pat": {MaxStitches: 999999, MaxColors: 1, MaxDimension: 400},
	"qcc": {MaxStitches: 999999, MaxColors: 1, MaxDimension: 400},
}

// LimitsFor returns the Limits for a format name (case-insensitive), and
// whether that format is known.
func LimitsFor(name string) (Limits, bool) {
	l, ok := limitsTable[strings.ToLower(name)]
	return l, ok
}

// CheckLimits validates p against the named format's ceilings.
func CheckLimits(p *stitch.Pattern, name string) error {
	l, ok := LimitsFor(name)
	if !ok {
		return stitch.Newf(stitch.KindInvalidInput, "format: unknown format %q", name)
	}
	if len(p.Stitches) > l.MaxStitches {
		return stitch.Newf(stitch.KindFormatLimit, "format %s: %d stitches exceeds limit %d", name, len(p.Stitches), l.MaxStitches)
	}
	if len(p.Colors) > l.MaxColors {
		return stitch.Newf(stitch.KindFormatLimit, "format %s: %d colors exceeds limit %d", name, len(p.Colors), l.MaxColors)
	}
	minX, minY, maxX, maxY, ok := p.Bounds()
	if ok {
		if maxX-minX > l.MaxDimension || maxY-minY > l.MaxDimension {
			return stitch.Newf(stitch.KindFormatLimit, "format %s: dimension exceeds limit %.0fmm", name, l.MaxDimension)
		}
	}
	return nil
}
