package stitch

import "fmt"

// ThreadColor is one fixed entry in the machine thread palette.
type ThreadColor struct {
	Name    string
	R, G, B uint8
}

// Palette is the compile-time, process-wide set of thread colors every
// quantizer and format writer maps pixels onto. It must never be mutated
// at runtime.
var Palette = [...]ThreadColor{
	{Name: "Black", R: 0x00, G: 0x00, B: 0x00},
	{Name: "Dark Gray", R: 0x40, G: 0x40, B: 0x40},
	{Name: "Medium Gray", R: 0x80, G: 0x80, B: 0x80},
	{Name: "Light Gray", R: 0xC0, G: 0xC0, B: 0xC0},
	{Name: "White", R: 0xFF, G: 0xFF, B: 0xFF},
	{Name: "Red", R: 0xFF, G: 0x00, B: 0x00},
	{Name: "Green", R: 0x00, G: 0x80, B: 0x00},
	{Name: "Blue", R: 0x00, G: 0x00, B: 0xFF},
	{Name: "Yellow", R: 0xFF, G: 0xFF, B: 0x00},
	{Name: "Cyan", R: 0x00, G: 0xFF, B: 0xFF},
	{Name: "Magenta", R: 0xFF, G: 0x00, B: 0xFF},
}

// GrayscaleCount is how many leading Palette entries Grayscale mode draws from.
const GrayscaleCount = 5

// Hex formats a ThreadColor as "#RRGGBB".
func (t ThreadColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", t.R, t.G, t.B)
}

// NearestPaletteIndex returns the index into Palette closest to (r,g,b)
// under dist, restricted to the first n entries (use len(Palette) for the
// full table, GrayscaleCount for grayscale mode). Ties favor the lower index.
func NearestPaletteIndex(r, g, b float64, n int, dist func(r1, g1, b1, r2, g2, b2 float64) float64) int {
	best := 0
	bestD := dist(r, g, b, float64(Palette[0].R), float64(Palette[0].G), float64(Palette[0].B))
	for i := 1; i < n; i++ {
		d := dist(r, g, b, float64(Palette[i].R), float64(Palette[i].G), float64(Palette[i].B))
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}
