// Package processor applies transforms to image files: background
// removal via the rembg collaborator, and preset resizing driven by
// the geometry engine. Output is always PNG with an alpha channel.
package processor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/liek944/Bgone/internal/utils"
	"github.com/liek944/Bgone/pkg/geometry"
	"github.com/liek944/Bgone/pkg/rembg"
)

// Processor handles per-file transform operations.
type Processor struct {
	remover rembg.Remover
}

// New creates a Processor. The remover may be nil if only resize
// operations will be used.
func New(remover rembg.Remover) *Processor {
	return &Processor{remover: remover}
}

// LoadImage loads an image from a file path with WebP support.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else {
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDecode, path)
}

// SavePNG writes the image as a PNG, creating the parent directory if
// needed.
func (p *Processor) SavePNG(img image.Image, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return imaging.Save(img, path)
}

// RemoveBackgroundAndSave loads the input, runs background removal and
// writes a transparent PNG to outputPath. Errors are structured: the
// caller can distinguish a missing input, an unsupported format and a
// processing failure.
func (p *Processor) RemoveBackgroundAndSave(ctx context.Context, inputPath, outputPath string) error {
	if !utils.FileExists(inputPath) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if !utils.IsSupportedImage(inputPath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(inputPath))
	}

	img, err := p.LoadImage(inputPath)
	if err != nil {
		return err
	}

	result, err := p.remover.Remove(ctx, img)
	if err != nil {
		return fmt.Errorf("background removal: %w", err)
	}

	// PNG output needs a straight-alpha pixel format.
	rgba := imaging.Clone(result)

	if err := p.SavePNG(rgba, outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}
	return nil
}

// Resize applies the layout for the given mode to an already-loaded
// image and returns the result, always exactly width x height.
func (p *Processor) Resize(img image.Image, width, height int, mode geometry.Mode, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	layout := geometry.Compute(b.Dx(), b.Dy(), width, height, mode)

	scaled := imaging.Resize(img, layout.ScaledWidth, layout.ScaledHeight, imaging.Lanczos)

	switch layout.Op {
	case geometry.Crop:
		rect := image.Rect(layout.OffsetX, layout.OffsetY,
			layout.OffsetX+width, layout.OffsetY+height)
		return imaging.Crop(scaled, rect)
	case geometry.Pad:
		canvas := imaging.New(width, height, bg)
		return imaging.Overlay(canvas, scaled, image.Pt(layout.OffsetX, layout.OffsetY), 1.0)
	default:
		return scaled
	}
}

// ResizeAndSave loads, resizes and writes a PNG. Unlike
// RemoveBackgroundAndSave it never returns an error: failures are
// logged and reported as false. This mirrors the tool's long-standing
// behavior where a bad file in a resize batch is noted and skipped.
func (p *Processor) ResizeAndSave(inputPath, outputPath string, width, height int, mode geometry.Mode, bg color.NRGBA) bool {
	img, err := p.LoadImage(inputPath)
	if err != nil {
		slog.Error("resize failed", "input", inputPath, "error", err)
		return false
	}

	result := p.Resize(img, width, height, mode, bg)

	if err := p.SavePNG(result, outputPath); err != nil {
		slog.Error("resize failed", "input", inputPath, "error", err)
		return false
	}
	return true
}
