package measure

import (
	"image"
	"testing"
)

func TestMetadataExtractor_Empty(t *testing.T) {
	extractor := NewMetadataExtractor()

	meta := extractor.Extract(nil)
	if meta.ImageFormat != "" || meta.Dimensions != nil ||
		meta.HasMultipleItems != nil || meta.PrimaryProductVisible != nil {
		t.Errorf("Expected all-undetermined metadata for empty input, got %+v", meta)
	}
}

func TestMetadataExtractor_SingleImage(t *testing.T) {
	extractor := NewMetadataExtractor()

	buf := &ImageBuffer{
		Pixels: image.NewRGBA(image.Rect(0, 0, 320, 240)),
		Format: "PNG",
		Width:  320,
		Height: 240,
	}

	meta := extractor.Extract([]*ImageBuffer{buf})
	if meta.ImageFormat != "PNG" {
		t.Errorf("Expected format PNG, got %q", meta.ImageFormat)
	}
	if meta.Dimensions == nil || meta.Dimensions.Width != 320 || meta.Dimensions.Height != 240 {
		t.Errorf("Expected dimensions 320x240, got %+v", meta.Dimensions)
	}
	if meta.HasMultipleItems == nil || *meta.HasMultipleItems {
		t.Error("Expected HasMultipleItems false for one image")
	}
	if meta.PrimaryProductVisible == nil || !*meta.PrimaryProductVisible {
		t.Error("Expected PrimaryProductVisible true")
	}
}

func TestMetadataExtractor_MultipleImagesAndFormatDefault(t *testing.T) {
	extractor := NewMetadataExtractor()

	first := &ImageBuffer{Pixels: image.NewRGBA(image.Rect(0, 0, 10, 10)), Width: 10, Height: 10}
	second := &ImageBuffer{Pixels: image.NewRGBA(image.Rect(0, 0, 20, 20)), Format: "PNG", Width: 20, Height: 20}

	meta := extractor.Extract([]*ImageBuffer{first, second})

	// The first image drives format and dimensions; missing format
	// falls back to JPEG.
	if meta.ImageFormat != "JPEG" {
		t.Errorf("Expected default JPEG format, got %q", meta.ImageFormat)
	}
	if meta.Dimensions == nil || meta.Dimensions.Width != 10 {
		t.Errorf("Expected first image dimensions, got %+v", meta.Dimensions)
	}
	if meta.HasMultipleItems == nil || !*meta.HasMultipleItems {
		t.Error("Expected HasMultipleItems true for two images")
	}
}
