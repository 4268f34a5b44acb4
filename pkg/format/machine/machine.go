// Package machine converts a finished pattern into the integer 0.1mm
// coordinate space every binary format writer encodes, and remaps stitch
// colors onto the thread palette. It sits below pkg/format so the
// dispatcher and the individual format writers can both depend on it
// without a cycle.
package machine

import (
	"math"

	"github.com/lukifer23/embroiderypro/pkg/imaging"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Units is a stitch position in integer 0.1mm machine coordinates.
type Units struct {
	X, Y int
	Type stitch.StitchType
}

// ToUnits rescales p's stitches from millimeters to an origin-anchored,
// non-negative 0.1mm integer grid so origin translation and rounding
// happens exactly once, ahead of every writer.
func ToUnits(p *stitch.Pattern) []Units {
	if len(p.Stitches) == 0 {
		return nil
	}
	minX, minY, _, _, _ := p.Bounds()
	out := make([]Units, len(p.Stitches))
	for i, s := range p.Stitches {
		out[i] = Units{
			X:    int(math.Round((s.X - minX) * 10)),
			Y:    int(math.Round((s.Y - minY) * 10)),
			Type: s.Type,
		}
	}
	return out
}

// RemapToPalette rewrites every color to its nearest thread palette entry,
// so every writer emits only colors the machine's thread table actually
// has. Idempotent: colors already in the palette map to themselves.
func RemapToPalette(colors []string) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		r, g, b, ok := parseHex(c)
		if !ok {
			out[i] = stitch.Palette[0].Hex()
			continue
		}
		idx := stitch.NearestPaletteIndex(float64(r), float64(g), float64(b), len(stitch.Palette), imaging.Distance)
		out[i] = stitch.Palette[idx].Hex()
	}
	return out
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := parseHexByte3(s[1:])
	if err != nil {
		return 0, 0, 0, false
	}
	return v[0], v[1], v[2], true
}

func parseHexByte3(s string) ([3]uint8, error) {
	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return out, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return out, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, stitch.New(stitch.KindInvalidInput, "machine: invalid hex digit")
	}
}
