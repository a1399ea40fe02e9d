package container

import (
	"fmt"
	"net/http"

	"github.com/framesight/visual-measure/internal/caption"
	"github.com/framesight/visual-measure/internal/config"
	"github.com/framesight/visual-measure/internal/dataset"
	"github.com/framesight/visual-measure/internal/logger"
	"github.com/framesight/visual-measure/internal/measure"
	"github.com/framesight/visual-measure/internal/observer"
	"github.com/framesight/visual-measure/internal/repository"
	"github.com/framesight/visual-measure/internal/service"
	"github.com/framesight/visual-measure/internal/storage"
	"github.com/framesight/visual-measure/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config             *config.Config
	imageRepository    repository.ImageRepository
	aggregator         *measure.Aggregator
	productStore       *dataset.Store
	measurementService service.MeasurementService
	handler            http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	httpResolver := storage.NewHTTPImageResolver(cfg.MaxImageSide)

	var blobResolver storage.ImageResolver
	if cfg.AzureEnabled() {
		blobResolver, err = storage.NewAzureBlobResolver(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.MaxImageSide)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure resolver: %w", err)
		}
	}

	imageRepository := repository.NewSourceRepository(httpResolver, blobResolver)

	captioner, err := caption.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create captioner: %w", err)
	}

	metricsObserver := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metricsObserver)

	aggregator := measure.NewAggregator(
		imageRepository,
		measure.NewStatisticsExtractor(),
		measure.NewScorer(),
		captioner,
		publisher,
		cfg.ImageWorkers,
		cfg.ImageFetchTimeout,
	)

	// The product catalog is optional; ad-hoc analysis works without it.
	var store *dataset.Store
	if cfg.DatasetPath != "" {
		products, err := dataset.NewLoader(cfg.DatasetPath, logger.Logger).Load()
		if err != nil {
			logger.WithError(err).Warn("Product catalog not loaded; product endpoints will return 404")
		} else {
			store = dataset.NewStore(products)
		}
	}

	measurementService := service.NewMeasurementService(
		aggregator,
		store,
		publisher,
		metricsObserver,
		cfg.MaxImagesPerProduct,
		cfg.AnalysisTimeout,
	)
	handler := transport.NewHandler(measurementService, cfg)

	return &Container{
		config:             cfg,
		imageRepository:    imageRepository,
		aggregator:         aggregator,
		productStore:       store,
		measurementService: measurementService,
		handler:            handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
