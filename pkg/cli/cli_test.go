package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func TestOutputPathForDerivesSiblingPath(t *testing.T) {
	got := outputPathFor("/tmp/designs/flower.png", "dst")
	want := filepath.Join("/tmp/designs", "flower.dst")
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "does-not-exist.env")); err != nil {
		t.Fatalf("expected no error for a missing .env file, got %v", err)
	}
}

func TestLoadDotEnvAppliesValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STITCHCRAFT_WIDTH=42\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("STITCHCRAFT_WIDTH") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	settings := SettingsFromEnv(stitch.DefaultSettings())
	if settings.Width != 42 {
		t.Fatalf("got width %v, want 42", settings.Width)
	}
}

func TestSettingsFromEnvLeavesDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("STITCHCRAFT_HEIGHT")
	settings := SettingsFromEnv(stitch.DefaultSettings())
	if settings.Height != 100 {
		t.Fatalf("got height %v, want unchanged default 100", settings.Height)
	}
}

func TestJoinFormatsListsKnownFormats(t *testing.T) {
	if got := joinFormats(); got == "" {
		t.Fatal("expected a non-empty format list")
	}
}
