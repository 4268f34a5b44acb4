package imaging

import (
	"image"
	"math"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// distance implements the CIE94-flavored metric in the spec: a lightness
// term, a chroma term built from R and B only (G is intentionally
// omitted, matching the source this was distilled from), and a hue term
// derived from the other two. This is a known divergence from true
// CIE94/CIE Lab distance, preserved for bit-identical palette selection
// rather than "corrected" to include G.
func distance(r1, g1, b1, r2, g2, b2 float64) float64 {
	l1 := 0.2126*r1 + 0.7152*g1 + 0.0722*b1
	l2 := 0.2126*r2 + 0.7152*g2 + 0.0722*b2
	dl := l1 - l2

	c1 := math.Sqrt(r1*r1 + b1*b1)
	c2 := math.Sqrt(r2*r2 + b2*b2)
	dc := c1 - c2

	da := r1 - r2
	db := b1 - b2
	dh2 := da*da + db*db - dc*dc
	if dh2 < 0 {
		dh2 = 0
	}
	dh := math.Sqrt(dh2)

	sl := 1.0
	sc := 1 + 0.045*c1
	sh := 1 + 0.015*c1

	dlS := dl / sl
	dcS := dc / sc
	dhS := dh / sh
	return math.Sqrt(dlS*dlS + dcS*dcS + dhS*dhS)
}

// nearestThread finds the palette entry closest to (r,g,b) under distance,
// restricted to the first n palette entries.
func nearestThread(r, g, b float64, n int) stitch.ThreadColor {
	idx := stitch.NearestPaletteIndex(r, g, b, n, distance)
	return stitch.Palette[idx]
}

// Distance exports the quantizer's perceptual color metric so other
// packages (format writers remapping stitch colors back onto the palette)
// pick the same nearest entry the quantizer itself would have.
func Distance(r1, g1, b1, r2, g2, b2 float64) float64 {
	return distance(r1, g1, b1, r2, g2, b2)
}

// QuantizeImage maps every pixel of src onto the nearest thread-palette
// color under mode, returning the re-painted image and the set of hex
// colors actually used (order of first appearance). src must be non-nil
// with nonzero dimensions.
func QuantizeImage(src *image.NRGBA, mode stitch.ColorMode) (*image.NRGBA, []string, error) {
	if src == nil {
		return nil, nil, stitch.New(stitch.KindInvalidInput, "quantize: nil image")
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, nil, stitch.New(stitch.KindInvalidInput, "quantize: zero-dimension image")
	}

	n := len(stitch.Palette)
	if mode == stitch.Grayscale {
		n = stitch.GrayscaleCount
	}

	out := image.NewNRGBA(b)
	seen := make(map[string]bool)
	var used []string

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0])
			g := float64(src.Pix[i+1])
			bl := float64(src.Pix[i+2])

			var thread stitch.ThreadColor
			if mode == stitch.Grayscale {
				luminance := 0.299*r + 0.587*g + 0.114*bl
				thread = nearestThread(luminance, luminance, luminance, n)
			} else {
				thread = nearestThread(r, g, bl, n)
			}

			out.Pix[i+0] = thread.R
			out.Pix[i+1] = thread.G
			out.Pix[i+2] = thread.B
			out.Pix[i+3] = src.Pix[i+3]

			hex := thread.Hex()
			if !seen[hex] {
				seen[hex] = true
				used = append(used, hex)
			}
		}
	}
	return out, used, nil
}
