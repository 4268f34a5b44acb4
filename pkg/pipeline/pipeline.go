// Package pipeline sequences the conversion stages — quantize, normalize,
// detect edges, trace contours, plan stitches, optimize — into a single
// Convert call, reporting progress and surfacing the first stage error it
// hits under the shared stitch.Error taxonomy.
package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/lukifer23/embroiderypro/pkg/contour"
	"github.com/lukifer23/embroiderypro/pkg/imaging"
	"github.com/lukifer23/embroiderypro/pkg/optimizer"
	"github.com/lukifer23/embroiderypro/pkg/planner"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Stage names reported through ProgressFunc, in pipeline order.
const (
	StageProcessing = "processing" // ColorQuantizer
	StageBitmap     = "bitmap"     // BitmapNormalizer
	StageEdges      = "edges"      // EdgeDetector
	StageContours   = "contours"   // ContourTracer
	StageGenerating = "generating" // StitchPlanner
	StageOptimizing = "optimizing" // StitchOptimizer
)

// ProgressFunc is invoked at 0% on stage entry and 100% on stage exit.
// Implementations must be safe to call from the orchestrator's own
// goroutine; the pipeline never calls it concurrently.
type ProgressFunc func(stage string, percent int)

// Input bundles everything Convert needs for one invocation.
type Input struct {
	Image    image.Image
	Settings stitch.Settings
	Name     string // optional; used for Pattern.Metadata.Name
}

// Pipeline holds the progress callback for Convert invocations;
// cancellation arrives through Convert's ctx. It is not safe to invoke
// twice concurrently on the same instance; construct one Pipeline per
// conversion.
type Pipeline struct {
	OnProgress ProgressFunc
}

// New returns a Pipeline reporting progress through onProgress, which may be nil.
func New(onProgress ProgressFunc) *Pipeline {
	return &Pipeline{OnProgress: onProgress}
}

func (p *Pipeline) report(stage string, percent int) {
	if p.OnProgress != nil {
		p.OnProgress(stage, percent)
	}
}

// Convert runs the full stage sequence and returns the resulting pattern,
// or the first stage failure wrapped with that stage's name. ctx is
// checked at stage boundaries only; cancellation never interrupts a
// stage already in progress. Each stage consumes the previous stage's
// output image rather than the original: QuantizeImage's re-painted
// buffer feeds CreateBitmap, whose result in turn feeds DetectEdges.
func (p *Pipeline) Convert(ctx context.Context, in Input) (*stitch.Pattern, error) {
	if in.Image == nil {
		return nil, stitch.New(stitch.KindInvalidInput, "convert: nil image")
	}
	b := in.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "convert: zero-dimension image")
	}

	settings, _ := stitch.Sanitize(in.Settings)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageProcessing, 0)
	src := imaging.ToNRGBA(in.Image)
	quantized, usedColors, err := imaging.QuantizeImage(src, settings.ColorMode)
	if err != nil {
		return nil, stitch.WithStage(err, StageProcessing)
	}
	p.report(StageProcessing, 100)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageBitmap, 0)
	bitmap, err := imaging.CreateBitmap(quantized)
	if err != nil {
		return nil, stitch.WithStage(err, StageBitmap)
	}
	p.report(StageBitmap, 100)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageEdges, 0)
	edges, err := imaging.DetectEdges(bitmap, settings.EdgeThreshold)
	if err != nil {
		return nil, stitch.WithStage(err, StageEdges)
	}
	p.report(StageEdges, 100)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageContours, 0)
	contours := contour.TraceContours(edges)
	if len(contours) == 0 {
		return nil, stitch.WithStage(stitch.New(stitch.KindNoContours, "convert: no contours traced"), StageContours)
	}
	p.report(StageContours, 100)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageGenerating, 0)
	stitches, err := planner.GenerateStitches(planner.Input{Contours: contours, Settings: settings})
	if err != nil {
		return nil, stitch.WithStage(err, StageGenerating)
	}
	p.report(StageGenerating, 100)

	if err := p.checkCancel(ctx); err != nil {
		return nil, err
	}

	p.report(StageOptimizing, 0)
	optimized, err := optimizer.Optimize(stitches)
	if err != nil {
		return nil, stitch.WithStage(err, StageOptimizing)
	}
	p.report(StageOptimizing, 100)

	if len(optimized) < 10 {
		return nil, stitch.New(stitch.KindInsufficientStitches, "convert: fewer than 10 stitches after optimization")
	}
	for _, s := range optimized {
		if !s.Finite() {
			return nil, stitch.New(stitch.KindInvalidCoordinates, "convert: non-finite stitch coordinate")
		}
	}

	colors := mergeColors(usedColors, optimized)

	name := in.Name
	if name == "" {
		name = "Untitled"
	}

	return &stitch.Pattern{
		Stitches: optimized,
		Colors:   colors,
		Dimensions: stitch.Dimensions{
			Width:  settings.Width,
			Height: settings.Height,
		},
		Metadata: stitch.Metadata{
			Name:   name,
			Date:   time.Now().UTC().Format(time.RFC3339),
			Format: "internal",
		},
	}, nil
}

// mergeColors keeps the quantizer's used-colors order, then appends any
// stitch color not already present, preserving the invariant that every
// color appearing in a stitch appears in Pattern.Colors even though the
// quantizer and the planner are independent stages that don't directly
// share color state.
func mergeColors(quantized []string, stitches []stitch.StitchPoint) []string {
	seen := make(map[string]bool, len(quantized))
	out := make([]string, 0, len(quantized))
	for _, c := range quantized {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range stitch.CollectColors(stitches) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func (p *Pipeline) checkCancel(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return stitch.New(stitch.KindCancelled, "convert: cancelled")
	default:
		return nil
	}
}
