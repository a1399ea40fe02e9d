package measure

import "math"

// Empirically chosen eyewear-domain baselines. Studio product shots of
// frames sit around these values; deviations drive the scores.
const (
	neutralBrightness = 0.65
	neutralVariance   = 0.06

	scoreMin = -5.0
	scoreMax = 5.0
)

type scorer struct{}

// NewScorer creates the per-image measurement scorer.
func NewScorer() Scorer {
	return &scorer{}
}

// Score maps statistics to the five dimension scores via fixed linear
// transforms. Pure function: no state, no randomness.
func (s *scorer) Score(stats Statistics) Scores {
	formality := (neutralBrightness - stats.Brightness) * 2
	if stats.ColorVariance < neutralVariance {
		formality += 0.8
	}

	return Scores{
		VisualWeight:      clampScore((neutralBrightness - stats.Brightness) * 6),
		Embellishment:     clampScore((stats.ColorVariance - neutralVariance) * 25),
		Unconventionality: clampScore((stats.ColorVariance - neutralVariance) * 7),
		Formality:         clampScore(formality),
		GenderExpression:  clampScore((neutralBrightness - stats.Brightness) * 2),
	}
}

// clampScore rounds to 2 decimals then clamps into [-5.0, 5.0].
func clampScore(v float64) float64 {
	v = round2(v)
	if v < scoreMin {
		return scoreMin
	}
	if v > scoreMax {
		return scoreMax
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
