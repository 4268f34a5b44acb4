// Package imaging implements the pixel-level stages of the conversion
// pipeline: color quantization against the thread palette, bitmap
// normalization (equalize / contrast / brightness / denoise), and Sobel
// edge detection with non-maximum suppression.
package imaging

import (
	"image"
	"image/color"
)

// ToNRGBA converts any image.Image to a fresh *image.NRGBA with its
// bounds translated to the origin.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if n, ok := src.(*image.NRGBA); ok && b.Min.X == 0 && b.Min.Y == 0 {
		copy(out.Pix, n.Pix)
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(bl >> 8)
			out.Pix[i+3] = uint8(a >> 8)
		}
	}
	return out
}

// CloneNRGBA returns an independent copy of src.
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// samplePixelClamped returns the pixel at (x,y), clamping coordinates to
// the image bounds so edge/border kernels don't need special casing.
func samplePixelClamped(img *image.NRGBA, x, y int) color.NRGBA {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	i := img.PixOffset(x, y)
	return color.NRGBA{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}
