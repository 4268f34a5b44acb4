package imaging

import (
	"image"
	"math"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

var sobelGx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
var sobelGy = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

// DetectEdges runs Sobel gradient magnitude thresholding followed by
// non-maximum suppression over src, returning a binary (0/255) edge map.
// It guards against degenerate inputs: no edges at all, or so many edges
// that the result would be useless as a contour source.
func DetectEdges(src image.Image, threshold float64) (*image.NRGBA, error) {
	n := ToNRGBA(src)
	b := n.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return nil, stitch.New(stitch.KindInvalidInput, "edges: image smaller than 3x3")
	}

	gray := toGrayscaleBT601(n)
	mag := sobelMagnitude(gray, w, h)

	out := image.NewNRGBA(b)
	edgeCount := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if mag[y*w+x] > threshold {
				v = 255
				edgeCount++
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v, v, v, 255
		}
	}

	innerPixels := (w - 2) * (h - 2)
	if innerPixels < 0 {
		innerPixels = 0
	}
	if edgeCount == 0 {
		return nil, stitch.New(stitch.KindInsufficientEdges, "edges: no pixels exceeded threshold")
	}
	if innerPixels > 0 && float64(edgeCount)/float64(innerPixels) > 0.5 {
		return nil, stitch.New(stitch.KindTooManyEdges, "edges: more than half of interior pixels are edges")
	}

	suppressed := nonMaxSuppress(out, w, h)
	remaining := countWhite(suppressed, w, h)
	if remaining < 100 {
		return nil, stitch.New(stitch.KindInsufficientEdges, "edges: fewer than 100 edge pixels after suppression")
	}
	return suppressed, nil
}

func toGrayscaleBT601(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			r := float64(src.Pix[i+0])
			g := float64(src.Pix[i+1])
			bl := float64(src.Pix[i+2])
			v := clampFloatToUint8(0.299*r + 0.587*g + 0.114*bl)
			out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v, v, v, src.Pix[i+3]
		}
	}
	return out
}

func sobelMagnitude(gray *image.NRGBA, w, h int) []float64 {
	mag := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					c := samplePixelClamped(gray, x+kx, y+ky)
					v := float64(c.R)
					gx += v * sobelGx[ky+1][kx+1]
					gy += v * sobelGy[ky+1][kx+1]
				}
			}
			mag[y*w+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return mag
}

// nonMaxSuppress keeps a white pixel only if its intensity is >= all 8
// neighbors, clearing it otherwise. Since the input is already binary
// (0/255), ties among white neighbors keep the pixel (intensity is equal,
// not strictly less).
func nonMaxSuppress(edges *image.NRGBA, w, h int) *image.NRGBA {
	out := image.NewNRGBA(edges.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := edges.Pix[edges.PixOffset(x, y)]
			keep := true
			if v > 0 {
				for dy := -1; dy <= 1 && keep; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nv := samplePixelClamped(edges, x+dx, y+dy).R
						if nv > v {
							keep = false
							break
						}
					}
				}
			} else {
				keep = false
			}
			out8 := uint8(0)
			if keep {
				out8 = 255
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = out8, out8, out8, 255
		}
	}
	return out
}

func countWhite(img *image.NRGBA, w, h int) int {
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[img.PixOffset(x, y)] > 0 {
				n++
			}
		}
	}
	return n
}
