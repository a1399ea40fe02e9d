package models

// VisualDimensions holds the five signed visual dimension scores for a
// product, each on a fixed -5.0..+5.0 scale.
type VisualDimensions struct {
	GenderExpression  float64 `json:"gender_expression"`  // Masculine (-5) to Feminine (+5)
	VisualWeight      float64 `json:"visual_weight"`      // Sleek/Light (-5) to Bold/Heavy (+5)
	Embellishment     float64 `json:"embellishment"`      // Simple (-5) to Ornate (+5)
	Unconventionality float64 `json:"unconventionality"`  // Classic (-5) to Avant-garde (+5)
	Formality         float64 `json:"formality"`          // Casual (-5) to Formal (+5)
}

// VisualAttributes holds observable categorical attributes. Absent
// fields mean "undetermined", never "false".
type VisualAttributes struct {
	VisibleWirecore     *bool    `json:"visible_wirecore,omitempty"`
	FrameGeometry       string   `json:"frame_geometry,omitempty"`
	TransparencyOpacity string   `json:"transparency_opacity,omitempty"`
	DominantColors      []string `json:"dominant_colors,omitempty"`
	VisibleTextures     []string `json:"visible_textures,omitempty"`
	SuitableForKids     *bool    `json:"suitable_for_kids,omitempty"`
}

// ImageDimensions is a width/height pair in pixels.
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// VisualMetadata holds basic facts derived from the decoded image set.
type VisualMetadata struct {
	ImageFormat           string           `json:"image_format,omitempty"`
	Dimensions            *ImageDimensions `json:"dimensions,omitempty"`
	HasMultipleItems      *bool            `json:"has_multiple_items,omitempty"`
	PrimaryProductVisible *bool            `json:"primary_product_visible,omitempty"`
}

// MeasurementResult is the complete measurement result for one product.
// It is assembled once per analysis request and never mutated afterwards.
type MeasurementResult struct {
	ProductID       string           `json:"product_id,omitempty"`
	ImageURLs       []string         `json:"image_urls"`
	Dimensions      VisualDimensions `json:"dimensions"`
	Attributes      VisualAttributes `json:"attributes"`
	Metadata        VisualMetadata   `json:"metadata"`
	ConfidenceScore float64          `json:"confidence_score"`
	ProcessingNotes []string         `json:"processing_notes,omitempty"`
}
