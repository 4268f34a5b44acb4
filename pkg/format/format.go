package format

import (
	"strings"

	"github.com/lukifer23/embroiderypro/pkg/format/dst"
	"github.com/lukifer23/embroiderypro/pkg/format/exp"
	"github.com/lukifer23/embroiderypro/pkg/format/hus"
	"github.com/lukifer23/embroiderypro/pkg/format/jef"
	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/format/pat"
	"github.com/lukifer23/embroiderypro/pkg/format/pes"
	"github.com/lukifer23/embroiderypro/pkg/format/qcc"
	"github.com/lukifer23/embroiderypro/pkg/format/vp3"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// writerFunc is the contract every format package implements: take a
// pattern already known to respect that format's limits and encode it.
type writerFunc func(*stitch.Pattern) ([]byte, error)

var writers = map[string]writerFunc{
	"dst": dst.Write,
	"pes": pes.Write,
	"jef": jef.Write,
	"exp": exp.Write,
	"vp3": vp3.Write,
	"hus": hus.Write,
	"pat": pat.Write,
	"qcc": qcc.Write,
}

// Write validates p against name's limits, remaps its colors onto the
// thread palette, and dispatches to that format's encoder.
func Write(p *stitch.Pattern, name string) ([]byte, error) {
	name = strings.ToLower(name)
	if err := CheckLimits(p, name); err != nil {
		return nil, err
	}
	w, ok := writers[name]
	if !ok {
		return nil, stitch.Newf(stitch.KindInvalidInput, "format: unknown format %q", name)
	}

	remapped := *p
	remapped.Colors = machine.RemapToPalette(p.Colors)
	remapped.Stitches = remapColorsOnStitches(p.Stitches, p.Colors, remapped.Colors)

	data, err := w(&remapped)
	if err != nil {
		return nil, stitch.WithStage(err, name)
	}
	return data, nil
}

func remapColorsOnStitches(stitches []stitch.StitchPoint, from, to []string) []stitch.StitchPoint {
	lookup := make(map[string]string, len(from))
	for i, c := range from {
		if i < len(to) {
			lookup[c] = to[i]
		}
	}
	out := make([]stitch.StitchPoint, len(stitches))
	for i, s := range stitches {
		out[i] = s
		if mapped, ok := lookup[s.Color]; ok {
			out[i].Color = mapped
		}
	}
	return out
}

// Names returns the supported format names, in a fixed order.
func Names() []string {
	return []string{"dst", "pes", "jef", "exp", "vp3", "hus", "pat", "qcc"}
}
