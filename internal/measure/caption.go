package measure

import "fmt"

// Fixed thresholds for the statistics-derived fallback caption.
var toneThresholds = []struct {
	below float64
	label string
}{
	{0.45, "very dark"},
	{0.55, "dark"},
	{0.65, "neutral"},
}

var complexityThresholds = []struct {
	below float64
	label string
}{
	{0.05, "minimal"},
	{0.10, "simple"},
}

// FallbackCaption synthesizes a caption purely from image statistics.
// It never asserts facts that are not derivable from the statistics:
// no object claims, no color claims.
func FallbackCaption(stats Statistics) string {
	tone := "light"
	for _, t := range toneThresholds {
		if stats.Brightness < t.below {
			tone = t.label
			break
		}
	}

	complexity := "visually detailed"
	for _, c := range complexityThresholds {
		if stats.ColorVariance < c.below {
			complexity = c.label
			break
		}
	}

	return fmt.Sprintf("%s toned eyewear, %s visual design, studio product photograph", tone, complexity)
}
