package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestMedian9ReturnsMiddleValue(t *testing.T) {
	w := [9]uint8{9, 1, 8, 2, 7, 3, 6, 4, 5}
	if got := median9(w); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestMedianFilter3x3SmoothsSingleOutlierPixel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := medianFilter3x3(img)
	i := out.PixOffset(1, 1)
	if out.Pix[i] != 100 {
		t.Fatalf("center pixel after median filter = %d, want 100 (outlier suppressed)", out.Pix[i])
	}
}

func TestMedianFilter3x3PreservesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
		}
	}
	out := medianFilter3x3(img)
	i := out.PixOffset(1, 1)
	if out.Pix[i+3] != 128 {
		t.Fatalf("got alpha %d, want 128", out.Pix[i+3])
	}
}
