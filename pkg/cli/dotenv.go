package cli

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// LoadDotEnv loads a .env file into the process environment. Missing files
// are not an error: most invocations rely purely on flags or defaults.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// SettingsFromEnv overlays any STITCHCRAFT_* environment variables onto a
// base Settings value, letting a .env file or shell environment supply
// defaults that flags can still override.
func SettingsFromEnv(base stitch.Settings) stitch.Settings {
	out := base
	if v, ok := envFloat("STITCHCRAFT_WIDTH"); ok {
		out.Width = v
	}
	if v, ok := envFloat("STITCHCRAFT_HEIGHT"); ok {
		out.Height = v
	}
	if v, ok := envFloat("STITCHCRAFT_DENSITY"); ok {
		out.Density = v
	}
	if v, ok := envFloat("STITCHCRAFT_EDGE_THRESHOLD"); ok {
		out.EdgeThreshold = v
	}
	if v, ok := envFloat("STITCHCRAFT_FILL_ANGLE"); ok {
		out.FillAngle = v
	}
	if v, ok := envFloat("STITCHCRAFT_PULL_COMPENSATION"); ok {
		out.PullCompensation = v
	}
	if v := os.Getenv("STITCHCRAFT_COLOR"); v != "" {
		out.Color = v
	}
	if v := os.Getenv("STITCHCRAFT_UNDERLAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			out.UseUnderlay = b
		}
	}
	if v := os.Getenv("STITCHCRAFT_COLOR_MODE"); v == "grayscale" {
		out.ColorMode = stitch.Grayscale
	}
	return out
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
