package machine

import (
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func TestToUnitsAnchorsAtMinimum(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.StitchPoint{
			{Point: stitch.Point{X: 5, Y: 5}, Type: stitch.Normal},
			{Point: stitch.Point{X: 10, Y: 8}, Type: stitch.Normal},
		},
	}
	units := ToUnits(p)
	if units[0].X != 0 || units[0].Y != 0 {
		t.Fatalf("first unit should be at origin, got %+v", units[0])
	}
	if units[1].X != 50 || units[1].Y != 30 {
		t.Fatalf("got %+v, want X=50 Y=30 (0.1mm units)", units[1])
	}
}

func TestToUnitsEmptyPattern(t *testing.T) {
	if units := ToUnits(&stitch.Pattern{}); units != nil {
		t.Fatalf("expected nil for empty pattern, got %v", units)
	}
}

func TestRemapToPaletteIdempotent(t *testing.T) {
	in := []string{stitch.Palette[0].Hex(), stitch.Palette[4].Hex()}
	out := RemapToPalette(in)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("palette color %s remapped to %s, want unchanged", in[i], out[i])
		}
	}
}

func TestRemapToPaletteNearest(t *testing.T) {
	out := RemapToPalette([]string{"#FEFEFE"})
	if out[0] != "#FFFFFF" {
		t.Fatalf("got %s, want nearest palette entry #FFFFFF", out[0])
	}
}

func TestRemapToPaletteInvalidHexFallsBackToFirstEntry(t *testing.T) {
	out := RemapToPalette([]string{"not-a-color"})
	if out[0] != stitch.Palette[0].Hex() {
		t.Fatalf("got %s, want fallback %s", out[0], stitch.Palette[0].Hex())
	}
}
