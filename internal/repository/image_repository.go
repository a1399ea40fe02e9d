package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/framesight/visual-measure/internal/measure"
	"github.com/framesight/visual-measure/internal/storage"
	"github.com/framesight/visual-measure/pkg/validation"
)

// SourceRepository routes image sources to the resolver that handles
// their scheme: azblob:// sources go to the blob resolver, everything
// else is fetched over HTTP(S).
type SourceRepository struct {
	http      storage.ImageResolver
	blob      storage.ImageResolver
	validator *validation.URLValidator
}

// NewSourceRepository creates an image repository. blob may be nil when
// Azure credentials are not configured; azblob:// sources then fail
// with an explicit error instead of a nil dereference.
func NewSourceRepository(httpResolver, blobResolver storage.ImageResolver) ImageRepository {
	return &SourceRepository{
		http:      httpResolver,
		blob:      blobResolver,
		validator: validation.NewURLValidator(),
	}
}

// Resolve fetches and decodes the image behind a source identifier.
func (r *SourceRepository) Resolve(ctx context.Context, source string) (*measure.ImageBuffer, error) {
	if err := r.ValidateImageSource(source); err != nil {
		return nil, err
	}

	if strings.HasPrefix(source, "azblob://") {
		if r.blob == nil {
			return nil, fmt.Errorf("%w: azure storage is not configured", ErrInvalidImageSource)
		}
		return r.blob.Resolve(ctx, source)
	}
	return r.http.Resolve(ctx, source)
}

// ValidateImageSource validates if the provided source is acceptable.
func (r *SourceRepository) ValidateImageSource(source string) error {
	if err := r.validator.ValidateImageURL(source); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}
	return nil
}
