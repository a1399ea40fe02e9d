package repository

import (
	"context"

	"github.com/framesight/visual-measure/internal/measure"
)

// ImageRepository defines the interface for image source access.
type ImageRepository interface {
	// Resolve fetches and decodes the image behind a source identifier.
	Resolve(ctx context.Context, source string) (*measure.ImageBuffer, error)

	// ValidateImageSource validates if the provided source is acceptable.
	ValidateImageSource(source string) error
}
