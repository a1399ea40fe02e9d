package measure

import "github.com/framesight/visual-measure/pkg/models"

// MetadataExtractor derives format/dimension/multiplicity facts from
// the set of successfully decoded images.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a metadata extractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Extract returns metadata derived from the first decoded image plus
// the image count. An empty set yields an all-undetermined record.
// PrimaryProductVisible is an optimistic default, not an inference:
// no negative-detection capability exists.
func (e *MetadataExtractor) Extract(images []*ImageBuffer) models.VisualMetadata {
	if len(images) == 0 {
		return models.VisualMetadata{}
	}

	first := images[0]
	format := first.Format
	if format == "" {
		format = "JPEG"
	}

	return models.VisualMetadata{
		ImageFormat: format,
		Dimensions: &models.ImageDimensions{
			Width:  first.Width,
			Height: first.Height,
		},
		HasMultipleItems:      boolPtr(len(images) > 1),
		PrimaryProductVisible: boolPtr(true),
	}
}
