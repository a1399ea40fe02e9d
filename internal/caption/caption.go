// Package caption produces short visual descriptions of eyewear
// product images through pluggable vision-model backends.
package caption

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/framesight/visual-measure/internal/config"
	"github.com/framesight/visual-measure/internal/measure"
)

// captionPrompt steers the vision model toward the visual properties
// the downstream keyword extraction understands.
const captionPrompt = "Describe this eyewear product photo in one short sentence. " +
	"Mention the frame shape, dominant colors, material texture, transparency, " +
	"and whether the style looks masculine, feminine or unisex."

// NewFromConfig builds the captioner selected by CAPTIONER. The "none"
// backend is a valid choice: it reports itself disabled so callers can
// fall back to statistics-derived captions without logging a failure.
func NewFromConfig(cfg *config.Config) (measure.Captioner, error) {
	switch cfg.Captioner {
	case config.CaptionerNone:
		return &DisabledCaptioner{}, nil
	case config.CaptionerOllama:
		return NewOllamaCaptioner(cfg.OllamaURL, cfg.OllamaModel)
	case config.CaptionerGemini:
		return NewGeminiCaptioner(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown captioner backend: %s", cfg.Captioner)
	}
}

// DisabledCaptioner is the no-op backend.
type DisabledCaptioner struct{}

func (d *DisabledCaptioner) Caption(ctx context.Context, img *measure.ImageBuffer) (string, error) {
	return "", measure.ErrCaptionerDisabled
}

// encodeJPEG re-encodes a decoded buffer for transport to a vision
// model API. Quality 85 keeps payloads small without hurting captions.
func encodeJPEG(img *measure.ImageBuffer) ([]byte, error) {
	if img == nil || img.Pixels == nil {
		return nil, measure.ErrEmptyImage
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.Pixels, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image for captioning: %w", err)
	}
	return buf.Bytes(), nil
}
