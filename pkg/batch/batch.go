// Package batch drives a sequence of image files through a transform
// under an overwrite policy, with progress reporting, per-item failure
// accumulation and cooperative cancellation between items.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/segmentio/ksuid"

	"github.com/liek944/Bgone/internal/utils"
	"github.com/liek944/Bgone/pkg/naming"
)

// ErrBusy is returned by Run when a run is already active on this Runner.
var ErrBusy = errors.New("a batch run is already in progress")

// Item is one input file candidate at its enumeration position.
type Item struct {
	Path  string
	Index int // 0-based enumeration index
}

// Status classifies how an item resolved.
type Status int

const (
	Processed Status = iota
	Skipped
	Failed
	// Cancelled is only produced by RunSingle, when the cancellation
	// signal arrived while the transform was in flight.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the resolution of a single item.
type Outcome struct {
	Item       Item
	Status     Status
	OutputPath string
	Reason     string // skip reason or failure message
}

// ItemError records a per-item failure for the final summary.
type ItemError struct {
	Path    string
	Message string
}

// Result aggregates one batch run. Processed+Skipped+Failed equals the
// number of items actually visited; items never reached because of
// cancellation are not counted.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []ItemError
	Cancelled bool
}

// Visited returns how many items were actually visited.
func (r Result) Visited() int {
	return r.Processed + r.Skipped + r.Failed
}

// Summary renders the one-line human-readable summary.
func (r Result) Summary() string {
	verb := "Done"
	if r.Cancelled {
		verb = "Cancelled"
	}
	return fmt.Sprintf("%s: %d processed, %d skipped, %d failed",
		verb, r.Processed, r.Skipped, r.Failed)
}

// Event is delivered to the progress callback after each item resolves.
type Event struct {
	RunID    string
	Outcome  Outcome
	Visited  int
	Total    int
	Fraction float64
}

// ProgressFunc receives progress events. It is called on the worker
// goroutine; UI layers must marshal onto their own context.
type ProgressFunc func(Event)

// Namer derives the output path for an item.
type Namer func(item Item) string

// Transform processes one input file into outputPath.
type Transform func(ctx context.Context, inputPath, outputPath string) error

// SimpleNamer names outputs after the input stem plus suffix, for
// background-removal batches.
func SimpleNamer(outputDir, suffix string) Namer {
	return func(item Item) string {
		return naming.SimpleOutputPath(item.Path, outputDir, suffix)
	}
}

// IndexedNamer names outputs by 1-based batch position and preset, for
// resize batches.
func IndexedNamer(outputDir, prefix, presetName string, width, height int) Namer {
	return func(item Item) string {
		name := naming.IndexedOutputName(prefix, item.Index+1, presetName, width, height)
		return filepath.Join(outputDir, name)
	}
}

// Config describes one batch run.
type Config struct {
	InputDir   string
	Overwrite  bool
	Namer      Namer
	Transform  Transform
	OnProgress ProgressFunc // optional
}

// Runner executes batch runs one at a time. A Runner may be reused, but
// only one run can be active on it; see Run and Start.
type Runner struct {
	processing atomic.Bool
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Busy reports whether a run is currently active.
func (r *Runner) Busy() bool {
	return r.processing.Load()
}

// Start launches the run on its own goroutine and reports it via done.
// When a run is already active the call is silently ignored and Start
// returns false, so a double-submitting UI cannot start two runs.
func (r *Runner) Start(ctx context.Context, cfg Config, done func(Result, error)) bool {
	if !r.processing.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer r.processing.Store(false)
		done(r.run(ctx, cfg))
	}()
	return true
}

// Run executes the batch synchronously. It returns ErrBusy when a run
// is already active on this Runner.
func (r *Runner) Run(ctx context.Context, cfg Config) (Result, error) {
	if !r.processing.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer r.processing.Store(false)

	return r.run(ctx, cfg)
}

func (r *Runner) run(ctx context.Context, cfg Config) (Result, error) {
	if !utils.DirExists(cfg.InputDir) {
		return Result{}, fmt.Errorf("input directory not found: %s", cfg.InputDir)
	}

	files, err := utils.ListImageFiles(cfg.InputDir)
	if err != nil {
		return Result{}, fmt.Errorf("enumerate %s: %w", cfg.InputDir, err)
	}

	runID := ksuid.New().String()
	log := slog.With("run", runID)
	log.Info("batch started", "input", cfg.InputDir, "files", len(files))

	var result Result
	total := len(files)

	for i, path := range files {
		// Cancellation is polled between items only; an in-flight
		// transform always runs to completion.
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		item := Item{Path: path, Index: i}
		outcome := r.processItem(ctx, cfg, item)

		switch outcome.Status {
		case Processed:
			result.Processed++
			log.Info("processed", "file", filepath.Base(path), "output", outcome.OutputPath)
		case Skipped:
			result.Skipped++
			log.Info("skipped", "file", filepath.Base(path), "reason", outcome.Reason)
		case Failed:
			result.Failed++
			result.Errors = append(result.Errors, ItemError{Path: path, Message: outcome.Reason})
			log.Warn("failed", "file", filepath.Base(path), "error", outcome.Reason)
		}

		if cfg.OnProgress != nil {
			visited := result.Visited()
			cfg.OnProgress(Event{
				RunID:    runID,
				Outcome:  outcome,
				Visited:  visited,
				Total:    total,
				Fraction: float64(visited) / float64(total),
			})
		}
	}

	log.Info("batch finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"cancelled", result.Cancelled)

	return result, nil
}

func (r *Runner) processItem(ctx context.Context, cfg Config, item Item) Outcome {
	outputPath := cfg.Namer(item)

	// The overwrite policy is evaluated once, at scheduling time.
	if utils.FileExists(outputPath) && !cfg.Overwrite {
		return Outcome{Item: item, Status: Skipped, OutputPath: outputPath, Reason: "exists"}
	}

	if err := cfg.Transform(ctx, item.Path, outputPath); err != nil {
		return Outcome{Item: item, Status: Failed, OutputPath: outputPath, Reason: err.Error()}
	}
	return Outcome{Item: item, Status: Processed, OutputPath: outputPath}
}

// RunSingle transforms one file outside of a batch. The transform is
// not interruptible; if the context was cancelled while it ran, any
// output file it wrote is deleted and the outcome is Cancelled.
func (r *Runner) RunSingle(ctx context.Context, inputPath, outputPath string, overwrite bool, transform Transform) Outcome {
	item := Item{Path: inputPath}

	if utils.FileExists(outputPath) && !overwrite {
		return Outcome{Item: item, Status: Skipped, OutputPath: outputPath, Reason: "exists"}
	}

	err := transform(ctx, inputPath, outputPath)

	if ctx.Err() != nil {
		// Don't leave a partial artifact behind after a cancelled run.
		if utils.FileExists(outputPath) {
			if rmErr := os.Remove(outputPath); rmErr != nil {
				slog.Warn("could not remove cancelled output", "path", outputPath, "error", rmErr)
			}
		}
		return Outcome{Item: item, Status: Cancelled, OutputPath: outputPath, Reason: "cancelled"}
	}

	if err != nil {
		return Outcome{Item: item, Status: Failed, OutputPath: outputPath, Reason: err.Error()}
	}
	return Outcome{Item: item, Status: Processed, OutputPath: outputPath}
}
