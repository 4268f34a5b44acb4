package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func TestDetectEdgesRejectsTooSmallImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	_, err := DetectEdges(img, 50)
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestDetectEdgesUniformImageHasNoEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	_, err := DetectEdges(img, 30)
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInsufficientEdges {
		t.Fatalf("expected InsufficientEdges for a uniform image, got %v", err)
	}
}

func TestDetectEdgesCheckerboardHasTooManyEdges(t *testing.T) {
	// 2x2-pixel cells: a 1-pixel checkerboard has zero Sobel response,
	// since the kernel's left and right (and top and bottom) taps always
	// land on equal values.
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(0)
			if (x/2+y/2)%2 == 0 {
				v = 255
			}
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	_, err := DetectEdges(img, 30)
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindTooManyEdges {
		t.Fatalf("expected TooManyEdges for a checkerboard, got %v", err)
	}
}

func TestToGrayscaleBT601PreservesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 99})
	out := toGrayscaleBT601(img)
	if out.Pix[3] != 99 {
		t.Fatalf("got alpha %d, want 99", out.Pix[3])
	}
}

func TestNonMaxSuppressKeepsIsolatedWhitePixel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+3] = 255
		}
	}
	whiteAt := func(x, y int) {
		i := img.PixOffset(x, y)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
	}
	whiteAt(1, 1)

	out := nonMaxSuppress(img, 3, 3)
	if out.Pix[out.PixOffset(1, 1)] != 255 {
		t.Fatal("sole white pixel with all-zero neighbors should survive suppression")
	}
	if out.Pix[out.PixOffset(0, 0)] != 0 {
		t.Fatal("pixel with no intensity should not be kept")
	}
}

func TestCountWhiteCountsNonZeroPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if got := countWhite(img, 2, 2); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}
