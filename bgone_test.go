package bgone

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/liek944/Bgone/internal/config"
	"github.com/liek944/Bgone/pkg/batch"
	"github.com/liek944/Bgone/pkg/geometry"
)

// blankRemover replaces every image with a transparent canvas
type blankRemover struct {
	err error
}

func (r *blankRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if r.err != nil {
		return nil, r.err
	}
	return image.NewNRGBA(img.Bounds()), nil
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 20, 10))); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApp(t *testing.T, remover *blankRemover) *App {
	t.Helper()
	app, err := NewAppWithRemover(config.Default(), remover)
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(config.Default())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app == nil {
		t.Fatal("NewApp returned nil")
	}

	bad := config.Default()
	bad.Server.URL = "not a url at all ://"
	if _, err := NewApp(bad); err == nil {
		t.Error("expected error for bad server URL")
	}
}

func TestRemoveBackgroundBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "a.png")
	writeInput(t, inDir, "b.png")

	app := newTestApp(t, &blankRemover{})
	result, err := app.RemoveBackgroundBatch(context.Background(), inDir, BatchOptions{
		OutputDir: outDir,
		Suffix:    "_transparent",
	})
	if err != nil {
		t.Fatalf("RemoveBackgroundBatch failed: %v", err)
	}

	if result.Processed != 2 || result.Failed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	for _, name := range []string{"a_transparent.png", "b_transparent.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestRemoveBackgroundBatchCollaboratorFailure(t *testing.T) {
	inDir := t.TempDir()
	writeInput(t, inDir, "a.png")

	app := newTestApp(t, &blankRemover{err: errors.New("server down")})
	result, err := app.RemoveBackgroundBatch(context.Background(), inDir, BatchOptions{
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("batch itself should not fail: %v", err)
	}
	if result.Failed != 1 || len(result.Errors) != 1 {
		t.Errorf("expected one per-item failure, got %+v", result)
	}
}

func TestRemoveBackgroundSingle(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	in := writeInput(t, inDir, "photo.png")

	app := newTestApp(t, &blankRemover{})
	outcome := app.RemoveBackground(context.Background(), in, BatchOptions{
		OutputDir: outDir,
		Suffix:    "_transparent",
	})
	if outcome.Status != batch.Processed {
		t.Fatalf("expected Processed, got %s (%s)", outcome.Status, outcome.Reason)
	}
	if filepath.Base(outcome.OutputPath) != "photo_transparent.png" {
		t.Errorf("unexpected output path %s", outcome.OutputPath)
	}
}

func TestResizeBatch(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "x.png")

	app := newTestApp(t, &blankRemover{})
	result, err := app.ResizeBatch(context.Background(), inDir, ResizeOptions{
		OutputDir: outDir,
		Prefix:    "product",
		Preset:    "Etsy",
		Mode:      geometry.Fill,
	})
	if err != nil {
		t.Fatalf("ResizeBatch failed: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	out := filepath.Join(outDir, "product-001-etsy-2000x2000.png")
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if img.Bounds().Dx() != 2000 || img.Bounds().Dy() != 2000 {
		t.Errorf("expected 2000x2000, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResizeBatchRejectsBadDimensions(t *testing.T) {
	app := newTestApp(t, &blankRemover{})

	// Custom preset without dimensions fails fast, before any items run.
	_, err := app.ResizeBatch(context.Background(), t.TempDir(), ResizeOptions{
		OutputDir: t.TempDir(),
		Prefix:    "p",
		Preset:    "Custom",
		Mode:      geometry.Fit,
	})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}

	_, err = app.ResizeBatch(context.Background(), t.TempDir(), ResizeOptions{
		OutputDir: t.TempDir(),
		Prefix:    "p",
		Preset:    "Atlantis",
		Mode:      geometry.Fit,
	})
	if err == nil {
		t.Error("expected error for unknown preset")
	}
}
