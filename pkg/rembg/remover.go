// Package rembg talks to a background-removal backend. The model itself
// is a black box behind the Remover interface; this package ships an
// HTTP client for rembg-compatible servers.
package rembg

import (
	"context"
	"image"
)

// Remover removes the background from an image, returning an image with
// an alpha channel. Implementations may fail for any reason; callers are
// expected to treat failures as per-item errors.
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}
