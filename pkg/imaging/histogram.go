package imaging

import (
	"image"
	"math"
)

// computeIntensityHistogram bins channel-averaged intensity (R+G+B)/3 into
// 256 buckets.
func computeIntensityHistogram(src *image.NRGBA) [256]int {
	var hist [256]int
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			avg := (int(src.Pix[i+0]) + int(src.Pix[i+1]) + int(src.Pix[i+2])) / 3
			hist[avg]++
		}
	}
	return hist
}

// equalize performs histogram equalization on channel-averaged intensity
// and remaps each channel through the resulting CDF, preserving alpha.
func equalize(src *image.NRGBA) *image.NRGBA {
	hist := computeIntensityHistogram(src)
	b := src.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return CloneNRGBA(src)
	}

	cdf := make([]int, 256)
	running := 0
	for v := 0; v < 256; v++ {
		running += hist[v]
		cdf[v] = running
	}
	cdfMin := 0
	for v := 0; v < 256; v++ {
		if cdf[v] > 0 {
			cdfMin = cdf[v]
			break
		}
	}
	cdfMax := cdf[255]

	lut := make([]uint8, 256)
	denom := float64(cdfMax - cdfMin)
	for v := 0; v < 256; v++ {
		if denom <= 0 {
			lut[v] = uint8(v)
			continue
		}
		mapped := math.Round(float64(cdf[v]-cdfMin) / denom * 255.0)
		lut[v] = clampFloatToUint8(mapped)
	}

	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			out.Pix[i+0] = lut[src.Pix[i+0]]
			out.Pix[i+1] = lut[src.Pix[i+1]]
			out.Pix[i+2] = lut[src.Pix[i+2]]
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
