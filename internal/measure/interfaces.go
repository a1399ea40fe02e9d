package measure

import "context"

// StatisticsExtractor computes summary statistics from a decoded image.
type StatisticsExtractor interface {
	Extract(buf *ImageBuffer) (Statistics, error)
}

// Scorer maps image statistics to the five clamped dimension scores.
// Implementations must be pure: identical statistics always produce
// identical scores.
type Scorer interface {
	Score(stats Statistics) Scores
}

// Captioner produces a descriptive text for one image. Implementations
// backed by an external model may fail; the aggregator falls back to
// the deterministic statistics-derived caption.
type Captioner interface {
	Caption(ctx context.Context, buf *ImageBuffer) (string, error)
}

// Resolver turns an opaque image source identifier into a decoded,
// size-capped ImageBuffer.
type Resolver interface {
	Resolve(ctx context.Context, source string) (*ImageBuffer, error)
}
