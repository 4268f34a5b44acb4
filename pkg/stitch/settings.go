package stitch

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Settings is the sanitized-before-use configuration for a single
// pipeline invocation. All fields are in the ranges documented on each
// one; Sanitize is responsible for getting arbitrary user input there.
type Settings struct {
	Width            float64 // mm, canvas target
	Height           float64 // mm, canvas target
	Density          float64 // stitches per mm^2
	EdgeThreshold    float64 // Sobel magnitude cutoff, 0-255
	FillAngle        float64 // degrees, normalized to [0, 360)
	UseUnderlay      bool
	PullCompensation float64 // mm
	Color            string  // hex-RGB "#RRGGBB"
	ColorMode        ColorMode
}

// DefaultSettings mirrors the documented defaults for an otherwise-empty Settings value.
func DefaultSettings() Settings {
	return Settings{
		Width:         100,
		Height:        100,
		Density:       3,
		EdgeThreshold: 128,
		FillAngle:     0,
		Color:         "#000000",
		ColorMode:     Color,
	}
}

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeAngle maps any finite degree value into [0, 360).
func normalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// resolveColor accepts a hex color or a CSS color name and returns a
// canonical "#RRGGBB" string, or "", false if neither applies.
func resolveColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if hexColorRE.MatchString(s) {
		return strings.ToUpper(s), true
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		hex := make([]byte, 0, 7)
		hex = append(hex, '#')
		const digits = "0123456789ABCDEF"
		for _, b := range [3]byte{c.R, c.G, c.B} {
			hex = append(hex, digits[b>>4], digits[b&0x0F])
		}
		return string(hex), true
	}
	return "", false
}

// Adjustment records that a field was clamped or normalized during
// sanitization, for diagnostic reporting back to the caller.
type Adjustment struct {
	Field    string
	Original string
	Final    string
}

// Sanitize clamps and normalizes every field of s per the documented
// ranges and returns the sanitized copy plus the list of fields that were
// adjusted. Sanitize is idempotent: sanitizing the Settings it returns
// reports no further adjustments.
func Sanitize(s Settings) (Settings, []Adjustment) {
	out := s
	var adj []Adjustment

	record := func(field, orig, final string) {
		if orig != final {
			adj = append(adj, Adjustment{Field: field, Original: orig, Final: final})
		}
	}

	clamped := clamp(s.Width, 10, 1000)
	record("width", ftoa(s.Width), ftoa(clamped))
	out.Width = clamped

	clamped = clamp(s.Height, 10, 1000)
	record("height", ftoa(s.Height), ftoa(clamped))
	out.Height = clamped

	clamped = clamp(s.Density, 1, 5)
	record("density", ftoa(s.Density), ftoa(clamped))
	out.Density = clamped

	threshold := s.EdgeThreshold
	if threshold == 0 {
		threshold = 128
	}
	clamped = clamp(threshold, 64, 192)
	record("edgeThreshold", ftoa(s.EdgeThreshold), ftoa(clamped))
	out.EdgeThreshold = clamped

	normAngle := normalizeAngle(s.FillAngle)
	record("fillAngle", ftoa(s.FillAngle), ftoa(normAngle))
	out.FillAngle = normAngle

	clamped = clamp(s.PullCompensation, 0, 100)
	record("pullCompensation", ftoa(s.PullCompensation), ftoa(clamped))
	out.PullCompensation = clamped

	if resolved, ok := resolveColor(s.Color); ok {
		record("color", s.Color, resolved)
		out.Color = resolved
	} else {
		record("color", s.Color, "#000000")
		out.Color = "#000000"
	}

	if s.ColorMode != Grayscale && s.ColorMode != Color {
		out.ColorMode = Color
	}

	return out, adj
}

func ftoa(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
