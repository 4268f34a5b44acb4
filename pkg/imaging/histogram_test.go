package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestComputeIntensityHistogramBinsChannelAverage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	img.Set(1, 0, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	hist := computeIntensityHistogram(img)
	if hist[30] != 1 || hist[90] != 1 {
		t.Fatalf("got hist[30]=%d hist[90]=%d, want 1 and 1", hist[30], hist[90])
	}
}

func TestEqualizeFlatImageIsUnchanged(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
			continue
		}
		img.Pix[i] = 50
	}
	out := equalize(img)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := out.PixOffset(x, y)
			if out.Pix[i] != 50 {
				t.Fatalf("flat image changed under equalization: got %d, want 50", out.Pix[i])
			}
		}
	}
}

func TestEqualizeStretchesFullRangeToExtremes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.Set(1, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	out := equalize(img)
	lo := out.Pix[out.PixOffset(0, 0)]
	hi := out.Pix[out.PixOffset(1, 0)]
	if lo != 0 {
		t.Fatalf("darkest pixel got %d, want 0 (equalized to the bottom of the CDF)", lo)
	}
	if hi != 255 {
		t.Fatalf("brightest pixel got %d, want 255 (equalized to the top of the CDF)", hi)
	}
}

func TestEqualizeEmptyImageReturnsClone(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	out := equalize(img)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("got bounds %+v, want %+v", out.Bounds(), img.Bounds())
	}
}
