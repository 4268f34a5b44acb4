package format

import (
	"strings"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func onePointPattern() *stitch.Pattern {
	return &stitch.Pattern{
		Stitches:   []stitch.StitchPoint{{Point: stitch.Point{X: 0, Y: 0}, Type: stitch.Normal, Color: "#000000"}},
		Colors:     []string{"#000000"},
		Dimensions: stitch.Dimensions{Width: 100, Height: 100},
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	_, err := Write(onePointPattern(), "made-up")
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestWriteDispatchesToEveryRegisteredFormat(t *testing.T) {
	for _, name := range Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			data, err := Write(onePointPattern(), name)
			if err != nil {
				t.Fatalf("Write(%s): %v", name, err)
			}
			if len(data) == 0 {
				t.Fatalf("Write(%s) produced no bytes", name)
			}
		})
	}
}

func TestWriteIsCaseInsensitive(t *testing.T) {
	lower, err := Write(onePointPattern(), "dst")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	upper, err := Write(onePointPattern(), "DST")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if string(lower) != string(upper) {
		t.Fatalf("expected case-insensitive dispatch to produce identical output")
	}
}

func TestNamesListsAllEightFormats(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("got %d formats, want 8", len(names))
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"dst", "pes", "jef", "exp", "vp3", "hus", "pat", "qcc"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("Names() missing %q: %v", want, names)
		}
	}
}
