package contour

import (
	"image"
	"testing"
)

func edgeImage(w, h int, on func(x, y int) bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				i := img.PixOffset(x, y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 255, 255, 255, 255
			}
		}
	}
	return img
}

func TestTraceContoursEmptyImageYieldsNoContours(t *testing.T) {
	img := edgeImage(10, 10, func(x, y int) bool { return false })
	if got := TraceContours(img); len(got) != 0 {
		t.Fatalf("got %d contours, want 0", len(got))
	}
}

func TestTraceContoursIsolatedPixelIsSingletonContour(t *testing.T) {
	img := edgeImage(10, 10, func(x, y int) bool { return x == 5 && y == 5 })
	got := TraceContours(img)
	if len(got) != 1 || len(got[0]) != 1 {
		t.Fatalf("got %+v, want one single-point contour", got)
	}
	if got[0][0].X != 5 || got[0][0].Y != 5 {
		t.Fatalf("got point %+v, want (5,5)", got[0][0])
	}
}

func TestTraceContoursSquareOutlineIsOneChain(t *testing.T) {
	img := edgeImage(10, 10, func(x, y int) bool {
		return (x == 2 || x == 6) && y >= 2 && y <= 6 || (y == 2 || y == 6) && x >= 2 && x <= 6
	})
	got := TraceContours(img)
	if len(got) != 1 {
		t.Fatalf("got %d contours, want 1 connected square outline", len(got))
	}
	if len(got[0]) < 4 {
		t.Fatalf("got %d points, want at least the 4 corners", len(got[0]))
	}
}
