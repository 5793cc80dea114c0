// Package geometry computes target dimensions, offsets and crop/pad
// placement for the three aspect-ratio modes. It is pure arithmetic
// with no image or file I/O.
package geometry

import (
	"fmt"
	"strings"
)

// Mode selects how a source image is mapped onto the target box.
type Mode string

const (
	// Fit scales the image to fit entirely inside the target box and
	// pads the remainder with a background color.
	Fit Mode = "fit"
	// Fill scales the image to cover the target box completely and
	// center-crops the overflow.
	Fill Mode = "fill"
	// Stretch distorts the image to the exact target dimensions.
	Stretch Mode = "stretch"
)

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case Fit:
		return Fit, nil
	case Fill:
		return Fill, nil
	case Stretch:
		return Stretch, nil
	default:
		return "", fmt.Errorf("unknown resize mode: %q (use fit, fill or stretch)", s)
	}
}

// Op describes the post-scale operation a Layout requires.
type Op int

const (
	// None means the scaled image already matches the target exactly.
	None Op = iota
	// Crop means the scaled image overflows the target and must be
	// center-cropped using the layout offsets.
	Crop
	// Pad means the scaled image is smaller than the target and must be
	// pasted at the layout offsets onto a background canvas.
	Pad
)

// Layout is the placement plan for one resize operation.
//
// For Crop the offsets locate the crop window inside the scaled image.
// For Pad the offsets locate the scaled image inside the target canvas.
type Layout struct {
	ScaledWidth  int
	ScaledHeight int
	OffsetX      int
	OffsetY      int
	Op           Op
}

// Compute returns the Layout for scaling a srcW x srcH image into a
// dstW x dstH box under the given mode.
//
// All inputs must be positive; non-positive dimensions are a caller bug,
// not a runtime condition, and must be rejected before reaching here.
// All arithmetic truncates toward zero, matching the output files users
// have come to expect.
func Compute(srcW, srcH, dstW, dstH int, mode Mode) Layout {
	switch mode {
	case Stretch:
		return Layout{ScaledWidth: dstW, ScaledHeight: dstH, Op: None}
	case Fill:
		return computeFill(srcW, srcH, dstW, dstH)
	default:
		return computeFit(srcW, srcH, dstW, dstH)
	}
}

func computeFill(srcW, srcH, dstW, dstH int) Layout {
	targetRatio := float64(dstW) / float64(dstH)
	srcRatio := float64(srcW) / float64(srcH)

	var scaledW, scaledH int
	if srcRatio > targetRatio {
		// Wider than target: scale by height, crop width.
		scaledH = dstH
		scaledW = int(float64(dstH) * srcRatio)
	} else {
		scaledW = dstW
		scaledH = int(float64(dstW) / srcRatio)
	}

	return Layout{
		ScaledWidth:  scaledW,
		ScaledHeight: scaledH,
		OffsetX:      (scaledW - dstW) / 2,
		OffsetY:      (scaledH - dstH) / 2,
		Op:           Crop,
	}
}

func computeFit(srcW, srcH, dstW, dstH int) Layout {
	targetRatio := float64(dstW) / float64(dstH)
	srcRatio := float64(srcW) / float64(srcH)

	var scaledW, scaledH int
	if srcRatio > targetRatio {
		// Wider than target: scale by width, pad height.
		scaledW = dstW
		scaledH = int(float64(dstW) / srcRatio)
	} else {
		scaledH = dstH
		scaledW = int(float64(dstH) * srcRatio)
	}

	return Layout{
		ScaledWidth:  scaledW,
		ScaledHeight: scaledH,
		OffsetX:      (dstW - scaledW) / 2,
		OffsetY:      (dstH - scaledH) / 2,
		Op:           Pad,
	}
}
