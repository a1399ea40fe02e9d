package measure

import "testing"

func TestScorer_KnownStatistics(t *testing.T) {
	scorer := NewScorer()

	// brightness 0.3, variance 0.15: a dark, busy image.
	scores := scorer.Score(Statistics{Brightness: 0.3, ColorVariance: 0.15})

	want := Scores{
		VisualWeight:      2.1,  // (0.65-0.3)*6
		Embellishment:     2.25, // (0.15-0.06)*25
		Unconventionality: 0.63, // (0.15-0.06)*7
		Formality:         0.7,  // (0.65-0.3)*2, variance above neutral so no bonus
		GenderExpression:  0.7,  // (0.65-0.3)*2
	}

	if scores != want {
		t.Errorf("Score mismatch:\n got  %+v\n want %+v", scores, want)
	}
}

func TestScorer_FormalityLowVarianceBonus(t *testing.T) {
	scorer := NewScorer()

	// variance below 0.06 adds the +0.8 plainness bonus to formality
	scores := scorer.Score(Statistics{Brightness: 0.65, ColorVariance: 0.02})
	if scores.Formality != 0.8 {
		t.Errorf("Expected formality 0.8 from plainness bonus, got %v", scores.Formality)
	}

	scores = scorer.Score(Statistics{Brightness: 0.65, ColorVariance: 0.06})
	if scores.Formality != 0.0 {
		t.Errorf("Expected formality 0.0 at the variance boundary, got %v", scores.Formality)
	}
}

func TestScorer_NeutralStatistics(t *testing.T) {
	scorer := NewScorer()

	scores := scorer.Score(Statistics{Brightness: 0.65, ColorVariance: 0.06})
	if scores != (Scores{}) {
		t.Errorf("Expected all-zero scores at the neutral point, got %+v", scores)
	}
}

func TestScorer_Clamping(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name  string
		stats Statistics
		check func(Scores) bool
	}{
		{
			// (0.65-0)*6 = 3.9, in range; extreme variance pushes
			// embellishment past the cap: (1.5-0.06)*25 = 36 -> 5.
			name:  "high variance caps embellishment",
			stats: Statistics{Brightness: 0.0, ColorVariance: 1.5},
			check: func(s Scores) bool { return s.Embellishment == 5.0 },
		},
		{
			// (0.65-3)*6 = -14.1 -> -5.
			name:  "extreme brightness caps visual weight low",
			stats: Statistics{Brightness: 3.0, ColorVariance: 0.06},
			check: func(s Scores) bool { return s.VisualWeight == -5.0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := scorer.Score(tt.stats)
			if !tt.check(scores) {
				t.Errorf("Clamp check failed for %+v: got %+v", tt.stats, scores)
			}
		})
	}
}

func TestScorer_AllScoresInRange(t *testing.T) {
	scorer := NewScorer()

	grid := []Statistics{
		{0, 0}, {0.1, 0.9}, {0.5, 0.5}, {1, 0}, {1, 1}, {0.65, 0.06},
	}
	for _, stats := range grid {
		scores := scorer.Score(stats)
		for _, v := range []float64{
			scores.VisualWeight, scores.Embellishment, scores.Unconventionality,
			scores.Formality, scores.GenderExpression,
		} {
			if v < -5.0 || v > 5.0 {
				t.Errorf("Score %v out of [-5, 5] for stats %+v", v, stats)
			}
		}
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer()
	stats := Statistics{Brightness: 0.42, ColorVariance: 0.11}

	first := scorer.Score(stats)
	for i := 0; i < 10; i++ {
		if scorer.Score(stats) != first {
			t.Fatal("Score is not deterministic for identical statistics")
		}
	}
}
