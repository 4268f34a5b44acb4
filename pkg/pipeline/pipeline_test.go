package pipeline

import (
	"context"
	"image"
	"testing"

	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

func TestConvertNilImage(t *testing.T) {
	p := New(nil)
	_, err := p.Convert(context.Background(), Input{Settings: stitch.DefaultSettings()})
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestConvertZeroDimensionImage(t *testing.T) {
	p := New(nil)
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, err := p.Convert(context.Background(), Input{Image: img, Settings: stitch.DefaultSettings()})
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindInvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestConvertRespectsCancelledContext(t *testing.T) {
	p := New(nil)
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Convert(ctx, Input{Image: img, Settings: stitch.DefaultSettings()})
	if kind, ok := stitch.KindOf(err); !ok || kind != stitch.KindCancelled {
		t.Fatalf("expected Cancelled, got %v", err)
	}
}

func TestMergeColorsDeduplicatesAndAppendsStitchColors(t *testing.T) {
	stitches := []stitch.StitchPoint{
		{Type: stitch.Normal, Color: "#FF0000"},
		{Type: stitch.Normal, Color: "#000000"},
	}
	got := mergeColors([]string{"#000000"}, stitches)
	want := []string{"#000000", "#FF0000"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestProgressNotReportedBeforeInputValidation(t *testing.T) {
	var stages []string
	p := New(func(stage string, percent int) {
		if percent == 0 {
			stages = append(stages, stage)
		}
	})
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, _ = p.Convert(context.Background(), Input{Image: img, Settings: stitch.DefaultSettings()})
	// The zero-dimension image fails before any stage reports; confirms
	// report() never fires ahead of the input validation it guards.
	if len(stages) != 0 {
		t.Fatalf("expected no stage reports before validation failure, got %v", stages)
	}
}
