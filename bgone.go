// Package bgone removes image backgrounds and resizes images for
// platform-specific dimension presets.
//
// The heavy lifting is delegated to a rembg-compatible server; this
// package supplies the batch pipeline around it: deterministic resize
// and composite geometry, output naming, overwrite policy, progress
// reporting and cooperative cancellation.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/liek944/Bgone"
//		"github.com/liek944/Bgone/internal/config"
//	)
//
//	func main() {
//		app, err := bgone.NewApp(config.Default())
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result, err := app.RemoveBackgroundBatch(context.Background(), "input", bgone.BatchOptions{
//			OutputDir: "output",
//			Suffix:    "_transparent",
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Println(result.Summary())
//	}
//
// The package consists of four main components:
//
// 1. Geometry (pkg/geometry): pure layout math for fit, fill and stretch
// 2. Naming (pkg/naming): deterministic output path derivation
// 3. Processor (pkg/processor): per-file load, transform and PNG save
// 4. Batch (pkg/batch): sequential orchestration with cancellation
package bgone

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/liek944/Bgone/internal/config"
	"github.com/liek944/Bgone/pkg/batch"
	"github.com/liek944/Bgone/pkg/geometry"
	"github.com/liek944/Bgone/pkg/naming"
	"github.com/liek944/Bgone/pkg/presets"
	"github.com/liek944/Bgone/pkg/processor"
	"github.com/liek944/Bgone/pkg/rembg"
)

// Version of the bgone library
const Version = "1.0.0"

// ErrInvalidDimensions is returned when a custom width or height is not
// positive. Dimensions are rejected up front, before any batch loop runs.
var ErrInvalidDimensions = errors.New("target dimensions must be positive")

// App wires the processor, the background-removal client and the batch
// runner behind a small API for the CLI (or any other front end).
type App struct {
	cfg    *config.Config
	proc   *processor.Processor
	runner *batch.Runner
}

// NewApp creates an App from a validated configuration.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := rembg.NewClient(cfg.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("rembg client: %w", err)
	}

	return &App{
		cfg:    cfg,
		proc:   processor.New(client),
		runner: batch.NewRunner(),
	}, nil
}

// NewAppWithRemover creates an App with a custom background remover,
// useful for testing or embedding an in-process model.
func NewAppWithRemover(cfg *config.Config, remover rembg.Remover) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &App{
		cfg:    cfg,
		proc:   processor.New(remover),
		runner: batch.NewRunner(),
	}, nil
}

// BatchOptions configures a background-removal batch run.
type BatchOptions struct {
	OutputDir  string
	Suffix     string
	Overwrite  bool
	OnProgress batch.ProgressFunc
}

// RemoveBackground processes a single file. If the context is cancelled
// while the transform runs, any written output is deleted and the
// outcome is Cancelled.
func (a *App) RemoveBackground(ctx context.Context, inputPath string, opts BatchOptions) batch.Outcome {
	outputPath := naming.SimpleOutputPath(inputPath, opts.OutputDir, opts.Suffix)
	return a.runner.RunSingle(ctx, inputPath, outputPath, opts.Overwrite, a.proc.RemoveBackgroundAndSave)
}

// RemoveBackgroundBatch processes every supported image in inputDir.
func (a *App) RemoveBackgroundBatch(ctx context.Context, inputDir string, opts BatchOptions) (batch.Result, error) {
	return a.runner.Run(ctx, batch.Config{
		InputDir:   inputDir,
		Overwrite:  opts.Overwrite,
		Namer:      batch.SimpleNamer(opts.OutputDir, opts.Suffix),
		Transform:  a.proc.RemoveBackgroundAndSave,
		OnProgress: opts.OnProgress,
	})
}

// ResizeOptions configures a resize batch run.
type ResizeOptions struct {
	OutputDir  string
	Prefix     string
	Preset     string
	Width      int // used when Preset is Custom
	Height     int
	Mode       geometry.Mode
	Background color.NRGBA
	Overwrite  bool
	OnProgress batch.ProgressFunc
}

// ResizeBatch resizes every supported image in inputDir to the preset
// (or custom) dimensions, naming outputs by batch position.
func (a *App) ResizeBatch(ctx context.Context, inputDir string, opts ResizeOptions) (batch.Result, error) {
	width, height := opts.Width, opts.Height

	size, ok := presets.Lookup(opts.Preset)
	if !ok {
		return batch.Result{}, fmt.Errorf("unknown preset: %q", opts.Preset)
	}
	if size != nil {
		width, height = size.Width, size.Height
	}
	if width <= 0 || height <= 0 {
		return batch.Result{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	transform := func(ctx context.Context, inputPath, outputPath string) error {
		if !a.proc.ResizeAndSave(inputPath, outputPath, width, height, opts.Mode, opts.Background) {
			return errors.New("resize failed")
		}
		return nil
	}

	return a.runner.Run(ctx, batch.Config{
		InputDir:   inputDir,
		Overwrite:  opts.Overwrite,
		Namer:      batch.IndexedNamer(opts.OutputDir, opts.Prefix, opts.Preset, width, height),
		Transform:  transform,
		OnProgress: opts.OnProgress,
	})
}

// Busy reports whether a batch run is active on this App.
func (a *App) Busy() bool {
	return a.runner.Busy()
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
