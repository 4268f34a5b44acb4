package imaging

import "image"

// medianFilter3x3 replaces each pixel with the per-channel median of its
// (clamped) 3x3 neighborhood. Alpha passes through unchanged.
func medianFilter3x3(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)

	var rWin, gWin, bWin [9]uint8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					c := samplePixelClamped(src, x+dx, y+dy)
					rWin[n] = c.R
					gWin[n] = c.G
					bWin[n] = c.B
					n++
				}
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = median9(rWin)
			out.Pix[i+1] = median9(gWin)
			out.Pix[i+2] = median9(bWin)
			out.Pix[i+3] = src.Pix[src.PixOffset(x, y)+3]
		}
	}
	return out
}

// median9 returns the median of a fixed 9-element window via insertion
// sort, which is faster than a general sort for windows this small.
func median9(w [9]uint8) uint8 {
	for i := 1; i < 9; i++ {
		v := w[i]
		j := i - 1
		for j >= 0 && w[j] > v {
			w[j+1] = w[j]
			j--
		}
		w[j+1] = v
	}
	return w[4]
}
