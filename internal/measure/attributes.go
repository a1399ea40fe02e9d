package measure

import (
	"math"
	"strings"

	"github.com/framesight/visual-measure/pkg/models"
)

// AttributeExtractor derives categorical visual attributes and the
// product-level gender expression score from caption text.
type AttributeExtractor struct{}

// NewAttributeExtractor creates an attribute extractor.
func NewAttributeExtractor() *AttributeExtractor {
	return &AttributeExtractor{}
}

// Extract maps the combined caption text of a product to attributes.
// Every field defaults to undetermined/absent, never to a guessed
// negative.
func (e *AttributeExtractor) Extract(captions []string) models.VisualAttributes {
	text := combineCaptions(captions)

	var attrs models.VisualAttributes

	if containsAny(text, wirecoreYes) {
		attrs.VisibleWirecore = boolPtr(true)
	} else if containsAny(text, wirecoreNo) {
		attrs.VisibleWirecore = boolPtr(false)
	}

	for _, rule := range frameGeometryRules {
		if containsAny(text, rule.keywords) {
			attrs.FrameGeometry = rule.label
			break
		}
	}

	for _, rule := range transparencyRules {
		if containsAny(text, rule.keywords) {
			attrs.TransparencyOpacity = rule.label
			break
		}
	}

	for _, color := range colorPalette {
		if len(attrs.DominantColors) == maxDominantColors {
			break
		}
		if strings.Contains(text, color) {
			attrs.DominantColors = append(attrs.DominantColors, titleCase(color))
		}
	}

	for _, texture := range textureVocabulary {
		if strings.Contains(text, texture) {
			attrs.VisibleTextures = append(attrs.VisibleTextures, titleCase(texture))
		}
	}

	if containsAny(text, kidsYes) {
		attrs.SuitableForKids = boolPtr(true)
	} else if containsAny(text, kidsNo) {
		attrs.SuitableForKids = boolPtr(false)
	}

	return attrs
}

// GenderExpression computes the product-level gender score from
// masculine/feminine/unisex keyword counts over the combined caption
// text: the winning side's count, weighted by 1.5 and capped at 5,
// signed negative for masculine. Ties and unisex-only text score 0.
// This intentionally diverges from the per-image statistics-based
// gender signal.
func (e *AttributeExtractor) GenderExpression(captions []string) float64 {
	text := combineCaptions(captions)

	masculine := countMatches(text, masculineKeywords)
	feminine := countMatches(text, feminineKeywords)

	switch {
	case masculine > feminine:
		return round2(-math.Min(scoreMax, float64(masculine)*genderKeywordWeight))
	case feminine > masculine:
		return round2(math.Min(scoreMax, float64(feminine)*genderKeywordWeight))
	default:
		return 0.0
	}
}

func combineCaptions(captions []string) string {
	return strings.ToLower(strings.Join(captions, " "))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// titleCase upper-cases the first letter of a vocabulary term. All
// table terms are single lower-case ASCII words.
func titleCase(term string) string {
	if term == "" {
		return term
	}
	return strings.ToUpper(term[:1]) + term[1:]
}

func boolPtr(v bool) *bool {
	return &v
}
