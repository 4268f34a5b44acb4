package imaging

import (
	"image"
	"math"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// CreateBitmap runs the BitmapNormalizer sequence: histogram equalization
// on channel-averaged intensity, conversion to BT.709 grayscale, then one
// of contrast enhancement, brightness adjustment, or 3x3 median denoise
// depending on the measured intensity spread.
func CreateBitmap(src image.Image) (*image.NRGBA, error) {
	n := ToNRGBA(src)
	b := n.Bounds()
	if b.Dx() < 3 || b.Dy() < 3 {
		return nil, stitch.New(stitch.KindInvalidInput, "bitmap: image smaller than 3x3")
	}

	eq := equalize(n)
	gray := toGrayscaleBT709(eq)

	min, max, mean := grayStats(gray)

	switch {
	case max-min < 20:
		return contrastEnhance(gray, min, max), nil
	case mean < 20 || mean > 235:
		return brightnessAdjust(gray, mean), nil
	default:
		return medianFilter3x3(gray), nil
	}
}

// toGrayscaleBT709 converts to luminance using Rec.709 weights, preserving alpha.
func toGrayscaleBT709(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0])
			g := float64(src.Pix[i+1])
			bl := float64(src.Pix[i+2])
			luminance := clampFloatToUint8(0.2126*r + 0.7152*g + 0.0722*bl)
			out.Pix[i+0] = luminance
			out.Pix[i+1] = luminance
			out.Pix[i+2] = luminance
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

func grayStats(src *image.NRGBA) (min, max uint8, mean float64) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	min, max = 255, 0
	sum := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := src.Pix[src.PixOffset(x, y)]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += int(v)
		}
	}
	total := w * h
	if total == 0 {
		return 0, 0, 0
	}
	return min, max, float64(sum) / float64(total)
}

// contrastEnhance applies a gamma=1.2 correction to the normalized
// intensity range [min,max] when the dynamic range is too flat to be
// useful for edge detection downstream.
func contrastEnhance(src *image.NRGBA, min, max uint8) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	rng := float64(max) - float64(min)
	const gamma = 1.2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			v := float64(src.Pix[i])
			var normalized float64
			if rng > 0 {
				normalized = (v - float64(min)) / rng
			}
			if normalized < 0 {
				normalized = 0
			}
			out8 := clampFloatToUint8(math.Round(math.Pow(normalized, 1.0/gamma) * 255.0))
			out.Pix[i+0] = out8
			out.Pix[i+1] = out8
			out.Pix[i+2] = out8
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}

// brightnessAdjust scales intensity by a factor that pulls the mean toward 128.
func brightnessAdjust(src *image.NRGBA, mean float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	factor := 1.0
	if mean > 0 {
		factor = 128.0 / mean
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			v := clampFloatToUint8(float64(src.Pix[i]) * factor)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
