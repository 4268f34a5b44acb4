// Package cli implements the stitchcraft command line front end: flag
// parsing, settings assembly, driving the conversion pipeline with a
// progress reporter, and writing the chosen output format.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/blang/semver"

	"github.com/lukifer23/embroiderypro/pkg/format"
	"github.com/lukifer23/embroiderypro/pkg/pipeline"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Version is the stitchcraft release version, reported by --version.
var Version = semver.MustParse("0.1.0")

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "stitchcraft converts a raster image into a machine embroidery stitch pattern.")
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  stitchcraft [flags] <image>")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	fs.PrintDefaults()
}

// RunCLI parses os.Args, converts the given image, and writes the stitch
// pattern in the requested format. It returns a process exit code.
func RunCLI() int {
	fs := flag.NewFlagSet("stitchcraft", flag.ContinueOnError)
	var (
		width     = fs.Float64("width", 0, "canvas width in mm (default 100, clamped to [10,1000])")
		height    = fs.Float64("height", 0, "canvas height in mm (default 100, clamped to [10,1000])")
		density   = fs.Float64("density", 0, "stitches per mm^2 (default 3, clamped to [1,5])")
		threshold = fs.Float64("edge-threshold", 0, "Sobel magnitude cutoff, 0-255 (default 128)")
		angle     = fs.Float64("fill-angle", 0, "fill angle in degrees")
		underlay  = fs.Bool("underlay", false, "add underlay stitching before the main fill")
		pull      = fs.Float64("pull-compensation", 0, "pull compensation offset in mm")
		color     = fs.String("color", "", "hex or CSS color name for single-color mode (default #000000)")
		grayscale = fs.Bool("grayscale", false, "quantize against the grayscale palette subset instead of full color")
		outFormat = fs.String("format", "dst", "output format: "+joinFormats())
		outPath   = fs.String("out", "", "output file path (default: input name with the format's extension)")
		envPath   = fs.String("env", ".env", "path to an optional .env file of STITCHCRAFT_* overrides")
		preview   = fs.String("preview", "", "optional path to save a progressive JPEG preview of the source image")
		version   = fs.Bool("version", false, "print the version and exit")
	)
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if *version {
		fmt.Println("stitchcraft " + Version.String())
		return 0
	}
	if fs.NArg() < 1 {
		usage(fs)
		return 2
	}
	inputPath := fs.Arg(0)

	if err := LoadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", *envPath, err)
	}

	settings := SettingsFromEnv(stitch.DefaultSettings())
	applyFlagOverrides(&settings, fs, width, height, density, threshold, angle, pull, color)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "underlay":
			settings.UseUnderlay = *underlay
		case "grayscale":
			if *grayscale {
				settings.ColorMode = stitch.Grayscale
			} else {
				settings.ColorMode = stitch.Color
			}
		}
	})

	img, _, err := LoadImage(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stitchcraft: %v\n", err)
		return 1
	}

	if *preview != "" {
		if err := SavePreviewJPEG(*preview, img); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write preview %s: %v\n", *preview, err)
		}
	}

	p := pipeline.New(func(stage string, percent int) {
		fmt.Fprintf(os.Stderr, "[%s] %d%%\n", stage, percent)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := filepath.Base(inputPath)
	pattern, err := p.Convert(ctx, pipeline.Input{Image: img, Settings: settings, Name: name})
	if err != nil {
		fmt.Fprintf(os.Stderr, "stitchcraft: conversion failed: %v\n", err)
		if kind, ok := stitch.KindOf(err); ok {
			fmt.Fprintf(os.Stderr, "stitchcraft: error kind: %s\n", kind)
		}
		return 1
	}

	data, err := format.Write(pattern, *outFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stitchcraft: encoding failed: %v\n", err)
		return 1
	}

	dest := *outPath
	if dest == "" {
		dest = outputPathFor(inputPath, *outFormat)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "stitchcraft: %v\n", err)
		return 1
	}

	fmt.Printf("wrote %s (%d stitches, %d colors)\n", dest, len(pattern.Stitches), len(pattern.Colors))
	return 0
}

func applyFlagOverrides(s *stitch.Settings, fs *flag.FlagSet, width, height, density, threshold, angle, pull *float64, color *string) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			s.Width = *width
		case "height":
			s.Height = *height
		case "density":
			s.Density = *density
		case "edge-threshold":
			s.EdgeThreshold = *threshold
		case "fill-angle":
			s.FillAngle = *angle
		case "pull-compensation":
			s.PullCompensation = *pull
		case "color":
			s.Color = *color
		}
	})
}

func joinFormats() string {
	names := format.Names()
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "|"
		}
		out += n
	}
	return out
}
