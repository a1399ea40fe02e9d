package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MeasurementEvent represents a measurement lifecycle event
type MeasurementEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	ProductID      string                 `json:"product_id,omitempty"`
	ImageCount     int                    `json:"image_count,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of measurement event
type EventType string

const (
	// MeasurementStarted when a product measurement begins
	MeasurementStarted EventType = "measurement_started"
	// MeasurementCompleted when a product measurement finishes successfully
	MeasurementCompleted EventType = "measurement_completed"
	// MeasurementFailed when a product measurement fails
	MeasurementFailed EventType = "measurement_failed"
	// ImageResolved when an image is successfully fetched and decoded
	ImageResolved EventType = "image_resolved"
	// ImageResolveFailed when an image fetch or decode fails
	ImageResolveFailed EventType = "image_resolve_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event MeasurementEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event MeasurementEvent)
}

// LoggingObserver logs measurement events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles measurement events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event MeasurementEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ProductID != "" {
		fields["product_id"] = event.ProductID
	}

	if event.ImageCount > 0 {
		fields["image_count"] = event.ImageCount
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	if event.Metadata != nil {
		for k, v := range event.Metadata {
			fields[k] = v
		}
	}

	switch event.EventType {
	case MeasurementStarted:
		o.logger.WithFields(fields).Info("Product measurement started")
	case MeasurementCompleted:
		o.logger.WithFields(fields).Info("Product measurement completed")
	case MeasurementFailed:
		o.logger.WithFields(fields).Error("Product measurement failed")
	case ImageResolved:
		o.logger.WithFields(fields).Debug("Image resolved successfully")
	case ImageResolveFailed:
		o.logger.WithFields(fields).Error("Image resolve failed")
	default:
		o.logger.WithFields(fields).Info("Measurement event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from measurement events
type MetricsObserver struct {
	mu                      sync.RWMutex
	totalMeasurements       int64
	successfulMeasurements  int64
	failedMeasurements      int64
	imagesResolved          int64
	imageResolveFailures    int64
	totalProcessingTime     time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles measurement events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event MeasurementEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case MeasurementStarted:
		o.totalMeasurements++
	case MeasurementCompleted:
		o.successfulMeasurements++
		o.totalProcessingTime += event.ProcessingTime
	case MeasurementFailed:
		o.failedMeasurements++
	case ImageResolved:
		o.imagesResolved++
	case ImageResolveFailed:
		o.imageResolveFailures++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulMeasurements > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulMeasurements)
	}

	return map[string]interface{}{
		"total_measurements":      o.totalMeasurements,
		"successful_measurements": o.successfulMeasurements,
		"failed_measurements":     o.failedMeasurements,
		"images_resolved":         o.imagesResolved,
		"image_resolve_failures":  o.imageResolveFailures,
		"total_processing_time":   o.totalProcessingTime.String(),
		"avg_processing_time":     avgProcessingTime.String(),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event MeasurementEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
