package measure

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/framesight/visual-measure/internal/logger"
	"github.com/framesight/visual-measure/internal/observer"
	"github.com/framesight/visual-measure/pkg/models"
	"github.com/sirupsen/logrus"
)

// Aggregator runs the per-image pipeline over every image of a product
// and merges the outcomes into one MeasurementResult.
type Aggregator struct {
	resolver   Resolver
	statistics StatisticsExtractor
	scorer     Scorer
	captioner  Captioner
	attributes *AttributeExtractor
	metadata   *MetadataExtractor
	publisher  observer.Subject

	workers      int
	fetchTimeout time.Duration
}

// NewAggregator creates a product aggregator. workers bounds the
// per-product image fan-out; fetchTimeout bounds each image resolution.
// publisher may be nil; resolve events are then not emitted.
func NewAggregator(
	resolver Resolver,
	statistics StatisticsExtractor,
	scorer Scorer,
	captioner Captioner,
	publisher observer.Subject,
	workers int,
	fetchTimeout time.Duration,
) *Aggregator {
	if workers <= 0 {
		workers = 4
	}
	return &Aggregator{
		resolver:     resolver,
		statistics:   statistics,
		scorer:       scorer,
		captioner:    captioner,
		attributes:   NewAttributeExtractor(),
		metadata:     NewMetadataExtractor(),
		publisher:    publisher,
		workers:      workers,
		fetchTimeout: fetchTimeout,
	}
}

// imageOutcome is the tagged result of one image's pipeline run.
// Resolution, captioning and scoring each either contribute a value or
// append a note; notes never abort the product.
type imageOutcome struct {
	source  string
	buffer  *ImageBuffer
	caption string
	scores  *Scores
	notes   []string
}

// Analyze resolves every image source, runs statistics, captioning and
// scoring per image, and merges the outcomes. It fails only when zero
// images resolve.
func (a *Aggregator) Analyze(ctx context.Context, sources []string, productID string) (*models.MeasurementResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoImages
	}

	outcomes := a.processAll(ctx, sources)

	var (
		buffers  []*ImageBuffer
		captions []string
		scored   []Scores
		notes    []string
	)
	for _, out := range outcomes {
		notes = append(notes, out.notes...)
		if out.buffer != nil {
			buffers = append(buffers, out.buffer)
		}
		if out.caption != "" {
			captions = append(captions, out.caption)
		}
		if out.scores != nil {
			scored = append(scored, *out.scores)
		}
	}

	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: %d source(s) requested", ErrNoImages, len(sources))
	}

	dimensions := a.mergeDimensions(scored)
	// Product-level gender expression comes from caption keywords, not
	// from the per-image statistics average.
	dimensions.GenderExpression = a.attributes.GenderExpression(captions)

	attributes := a.safeAttributes(captions, &notes)
	metadata := a.safeMetadata(buffers, &notes)

	result := &models.MeasurementResult{
		ProductID:       productID,
		ImageURLs:       sources,
		Dimensions:      dimensions,
		Attributes:      attributes,
		Metadata:        metadata,
		ConfidenceScore: round2(float64(len(scored)) / float64(len(sources))),
	}
	if len(notes) > 0 {
		result.ProcessingNotes = notes
	}
	return result, nil
}

// processAll fans the sources out over a bounded number of in-flight
// pipelines and collects outcomes in source order.
func (a *Aggregator) processAll(ctx context.Context, sources []string) []imageOutcome {
	outcomes := make([]imageOutcome, len(sources))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, source string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				outcomes[i] = imageOutcome{
					source: source,
					notes:  []string{fmt.Sprintf("image %s skipped: %v", source, ctx.Err())},
				}
				return
			}

			outcomes[i] = a.processImage(ctx, source)
		}(i, source)
	}

	wg.Wait()
	return outcomes
}

// processImage runs resolution, statistics, captioning and scoring for
// one source. Every failure is recorded as a note; a failure at any
// stage drops the remaining stages for this image only.
func (a *Aggregator) processImage(ctx context.Context, source string) imageOutcome {
	out := imageOutcome{source: source}

	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	buf, err := a.resolver.Resolve(fetchCtx, source)
	if err != nil {
		a.publishResolveEvent(ctx, source, err)
		out.notes = append(out.notes, fmt.Sprintf("failed to resolve image %s: %v", source, err))
		return out
	}
	a.publishResolveEvent(ctx, source, nil)
	out.buffer = buf

	stats, err := a.statistics.Extract(buf)
	if err != nil {
		out.notes = append(out.notes, fmt.Sprintf("failed to analyze image %s: %v", source, err))
		return out
	}

	out.caption = a.captionImage(ctx, source, buf, stats, &out.notes)

	scores := a.scorer.Score(stats)
	out.scores = &scores
	return out
}

// publishResolveEvent emits one event per resolution outcome so the
// metrics observer can count resolves and failures.
func (a *Aggregator) publishResolveEvent(ctx context.Context, source string, err error) {
	if a.publisher == nil {
		return
	}

	event := observer.MeasurementEvent{
		Timestamp: time.Now(),
		Metadata:  map[string]interface{}{"source": source},
	}
	if err != nil {
		event.EventType = observer.ImageResolveFailed
		event.ErrorMessage = err.Error()
	} else {
		event.EventType = observer.ImageResolved
		event.Success = true
	}
	a.publisher.NotifyObservers(ctx, event)
}

// captionImage returns the external caption verbatim when available
// and falls back to the statistics-derived caption otherwise. Only
// genuine captioner failures produce a note; the disabled captioner
// degrades silently.
func (a *Aggregator) captionImage(ctx context.Context, source string, buf *ImageBuffer, stats Statistics, notes *[]string) string {
	if a.captioner == nil {
		return FallbackCaption(stats)
	}

	text, err := a.captioner.Caption(ctx, buf)
	switch {
	case err == nil && text != "":
		return text
	case err != nil && !errors.Is(err, ErrCaptionerDisabled):
		*notes = append(*notes, fmt.Sprintf("caption generation failed for %s: %v", source, err))
	}
	return FallbackCaption(stats)
}

// mergeDimensions averages each per-image score across all scored
// images. The mean of an empty set is 0.0, not an error.
func (a *Aggregator) mergeDimensions(scored []Scores) models.VisualDimensions {
	if len(scored) == 0 {
		return models.VisualDimensions{}
	}

	n := len(scored)
	weight := make([]float64, n)
	embellishment := make([]float64, n)
	unconventionality := make([]float64, n)
	formality := make([]float64, n)
	for i, s := range scored {
		weight[i] = s.VisualWeight
		embellishment[i] = s.Embellishment
		unconventionality[i] = s.Unconventionality
		formality[i] = s.Formality
	}

	// GenderExpression is left for the caller: the product-level value
	// is caption-derived, never the statistics average.
	return models.VisualDimensions{
		VisualWeight:      round2(stat.Mean(weight, nil)),
		Embellishment:     round2(stat.Mean(embellishment, nil)),
		Unconventionality: round2(stat.Mean(unconventionality, nil)),
		Formality:         round2(stat.Mean(formality, nil)),
	}
}

// safeAttributes shields the request from attribute derivation
// failures: a panic is absorbed and replaced with an all-undetermined
// record.
func (a *Aggregator) safeAttributes(captions []string, notes *[]string) (attrs models.VisualAttributes) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("attribute extraction failed")
			*notes = append(*notes, fmt.Sprintf("attribute extraction failed: %v", r))
			attrs = models.VisualAttributes{}
		}
	}()
	return a.attributes.Extract(captions)
}

// safeMetadata mirrors safeAttributes for metadata derivation.
func (a *Aggregator) safeMetadata(images []*ImageBuffer, notes *[]string) (meta models.VisualMetadata) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{"panic": r}).Error("metadata extraction failed")
			*notes = append(*notes, fmt.Sprintf("metadata extraction failed: %v", r))
			meta = models.VisualMetadata{}
		}
	}()
	return a.metadata.Extract(images)
}
