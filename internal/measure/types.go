package measure

import (
	"errors"
	"image"
)

// ImageBuffer is a decoded, RGB-normalized raster handed to the core.
// The resolver caps the longer side before the buffer reaches this
// package, and the buffer is never mutated after creation.
type ImageBuffer struct {
	Pixels image.Image
	Format string // upper-case decode format, e.g. "JPEG", "PNG", "WEBP"
	Width  int
	Height int
}

// Statistics summarizes one image.
type Statistics struct {
	Brightness    float64 // mean of normalized channel intensities, in [0,1]
	ColorVariance float64 // population std dev of the same intensities, >= 0
}

// Scores holds the five per-image visual dimension scores, each
// clamped to [-5.0, 5.0] and rounded to 2 decimals.
type Scores struct {
	VisualWeight      float64
	Embellishment     float64
	Unconventionality float64
	Formality         float64
	GenderExpression  float64
}

var (
	// ErrEmptyImage indicates a nil or zero-sized image buffer.
	ErrEmptyImage = errors.New("empty image buffer")

	// ErrNoImages indicates that no image source could be resolved.
	// This is the only fatal condition of an analysis request.
	ErrNoImages = errors.New("no images could be resolved")

	// ErrCaptionerDisabled is returned by the disabled captioner. The
	// aggregator degrades to the statistics-derived fallback caption
	// without recording a processing note.
	ErrCaptionerDisabled = errors.New("semantic captioner disabled")
)
