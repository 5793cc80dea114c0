// Package naming derives deterministic output paths and filenames.
// It never touches the filesystem.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputExt is the extension every output file carries.
const OutputExt = ".png"

// SimpleOutputPath returns the output path for a background-removal run:
// the input stem plus an optional suffix, as a PNG under outputDir.
func SimpleOutputPath(inputFile, outputDir, suffix string) string {
	base := filepath.Base(inputFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+suffix+OutputExt)
}

// IndexedOutputName returns the filename for one item of a resize batch:
// "{prefix}-{index:03d}-{preset}-{width}x{height}.png".
//
// index is the item's 1-based enumeration position and is zero-padded to
// three digits; larger indexes print in full. The preset name is slugged
// by lower-casing and replacing spaces with hyphens.
func IndexedOutputName(prefix string, index int, presetName string, width, height int) string {
	slug := strings.ReplaceAll(strings.ToLower(presetName), " ", "-")
	return fmt.Sprintf("%s-%03d-%s-%dx%d%s", prefix, index, slug, width, height, OutputExt)
}
