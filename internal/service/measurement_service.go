package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/framesight/visual-measure/internal/dataset"
	apperrors "github.com/framesight/visual-measure/internal/errors"
	"github.com/framesight/visual-measure/internal/measure"
	"github.com/framesight/visual-measure/internal/observer"
	"github.com/framesight/visual-measure/pkg/models"
)

// MeasurementService defines the application-facing measurement operations
type MeasurementService interface {
	// AnalyzeImages measures an ad-hoc set of image sources
	AnalyzeImages(ctx context.Context, productID string, sources []string) (*models.MeasurementResult, error)

	// AnalyzeProduct measures a catalog product by ID
	AnalyzeProduct(ctx context.Context, productID int64) (*models.MeasurementResult, error)

	// ListProducts returns the full product catalog
	ListProducts() []dataset.Product

	// GetProduct looks up one catalog product
	GetProduct(productID int64) (*dataset.Product, error)

	// SampleProducts returns up to n random catalog products
	SampleProducts(n int) []dataset.Product

	// Metrics returns the current measurement counters
	Metrics() map[string]interface{}
}

// measurementService implements MeasurementService
type measurementService struct {
	aggregator *measure.Aggregator
	store      *dataset.Store
	publisher  observer.Subject
	metrics    *observer.MetricsObserver

	maxImagesPerProduct int
	analysisTimeout     time.Duration
}

// NewMeasurementService creates a new measurement service. store may be
// nil when no catalog was loaded; product operations then return
// not-found errors while ad-hoc analysis keeps working.
func NewMeasurementService(
	aggregator *measure.Aggregator,
	store *dataset.Store,
	publisher observer.Subject,
	metrics *observer.MetricsObserver,
	maxImagesPerProduct int,
	analysisTimeout time.Duration,
) MeasurementService {
	return &measurementService{
		aggregator:          aggregator,
		store:               store,
		publisher:           publisher,
		metrics:             metrics,
		maxImagesPerProduct: maxImagesPerProduct,
		analysisTimeout:     analysisTimeout,
	}
}

// AnalyzeImages measures an ad-hoc set of image sources
func (s *measurementService) AnalyzeImages(ctx context.Context, productID string, sources []string) (*models.MeasurementResult, error) {
	if len(sources) == 0 {
		return nil, apperrors.NewValidationError("at least one image URL is required", nil)
	}
	if s.maxImagesPerProduct > 0 && len(sources) > s.maxImagesPerProduct {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("too many image URLs: %d (limit: %d)", len(sources), s.maxImagesPerProduct), nil)
	}

	start := time.Now()
	s.publish(ctx, observer.MeasurementEvent{
		EventType:  observer.MeasurementStarted,
		Timestamp:  start,
		ProductID:  productID,
		ImageCount: len(sources),
		Success:    true,
	})

	runCtx := ctx
	if s.analysisTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.analysisTimeout)
		defer cancel()
	}

	result, err := s.aggregator.Analyze(runCtx, sources, productID)
	if err != nil {
		s.publish(ctx, observer.MeasurementEvent{
			EventType:      observer.MeasurementFailed,
			Timestamp:      time.Now(),
			ProductID:      productID,
			ImageCount:     len(sources),
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		if errors.Is(err, measure.ErrNoImages) {
			return nil, apperrors.NewValidationError("no images could be resolved", err)
		}
		return nil, apperrors.NewProcessingError("measurement failed", err)
	}

	s.publish(ctx, observer.MeasurementEvent{
		EventType:      observer.MeasurementCompleted,
		Timestamp:      time.Now(),
		ProductID:      productID,
		ImageCount:     len(sources),
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"confidence_score": result.ConfidenceScore,
		},
	})

	return result, nil
}

// AnalyzeProduct measures a catalog product by ID
func (s *measurementService) AnalyzeProduct(ctx context.Context, productID int64) (*models.MeasurementResult, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	sources := product.ImageURLs
	if s.maxImagesPerProduct > 0 && len(sources) > s.maxImagesPerProduct {
		sources = sources[:s.maxImagesPerProduct]
	}

	return s.AnalyzeImages(ctx, strconv.FormatInt(productID, 10), sources)
}

// ListProducts returns the full product catalog
func (s *measurementService) ListProducts() []dataset.Product {
	if s.store == nil {
		return nil
	}
	return s.store.All()
}

// GetProduct looks up one catalog product
func (s *measurementService) GetProduct(productID int64) (*dataset.Product, error) {
	if s.store == nil {
		return nil, apperrors.NewNotFoundError("product catalog is not loaded", dataset.ErrProductNotFound)
	}
	product, err := s.store.Get(productID)
	if err != nil {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("product %d not found", productID), err)
	}
	return product, nil
}

// SampleProducts returns up to n random catalog products
func (s *measurementService) SampleProducts(n int) []dataset.Product {
	if s.store == nil {
		return nil
	}
	return s.store.RandomSample(n)
}

// Metrics returns the current measurement counters
func (s *measurementService) Metrics() map[string]interface{} {
	return s.metrics.GetMetrics()
}

func (s *measurementService) publish(ctx context.Context, event observer.MeasurementEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}
