package imaging

import (
	"image"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func solidNRGBA(w, h int, r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
		}
	}
	return img
}

func TestQuantizeGrayscaleDarkToBlack(t *testing.T) {
	src := solidNRGBA(2, 2, 10, 10, 10, 255)
	_, used, err := QuantizeImage(src, stitch.Grayscale)
	if err != nil {
		t.Fatalf("QuantizeImage: %v", err)
	}
	if len(used) != 1 || used[0] != "#000000" {
		t.Fatalf("got %v, want [#000000]", used)
	}
}

func TestQuantizeGrayscaleLightToWhite(t *testing.T) {
	src := solidNRGBA(2, 2, 250, 250, 250, 255)
	_, used, err := QuantizeImage(src, stitch.Grayscale)
	if err != nil {
		t.Fatalf("QuantizeImage: %v", err)
	}
	if len(used) != 1 || used[0] != "#FFFFFF" {
		t.Fatalf("got %v, want [#FFFFFF]", used)
	}
}

func TestQuantizeNilImage(t *testing.T) {
	_, _, err := QuantizeImage(nil, stitch.Color)
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

// TestDistanceOmitsGreenFromChroma locks in the preserved CIE94 chroma-term
// bug (§9 open question 2): a pure-green difference must not move the
// chroma term at all, since C is computed from R and B only.
func TestDistanceOmitsGreenFromChroma(t *testing.T) {
	same := Distance(0, 0, 0, 0, 0, 0)
	greenOnly := Distance(0, 0, 0, 0, 255, 0)
	if same != 0 {
		t.Fatalf("distance to self must be 0, got %v", same)
	}
	if greenOnly == 0 {
		t.Fatalf("a pure green delta should still move the lightness term")
	}
	// With R and B both zero on each side, chroma (sqrt(R^2+B^2)) is 0 for
	// both colors regardless of G, so the distance must equal the pure
	// lightness-term delta, not a larger CIE94 distance that would result
	// from including G in the chroma/hue terms too.
	wantL := 0.7152 * 255
	got := Distance(0, 0, 0, 0, 255, 0)
	if diff := got - wantL; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("distance = %v, want lightness-only delta %v", got, wantL)
	}
}
