package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/framesight/visual-measure/internal/config"
	apperrors "github.com/framesight/visual-measure/internal/errors"
	"github.com/framesight/visual-measure/internal/logger"
	"github.com/framesight/visual-measure/internal/service"
	"github.com/framesight/visual-measure/pkg/models"
)

// NewHandler builds the HTTP router around the measurement service.
func NewHandler(svc service.MeasurementService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		requestID(),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", metrics(svc))

	api := r.Group("/api")
	{
		api.POST("/analyze", analyzeImages(svc, cfg))
		api.GET("/products", listProducts(svc))
		api.GET("/products/:id", getProduct(svc))
		api.POST("/products/:id/analyze", analyzeProduct(svc, cfg))
		api.GET("/sample-products", sampleProducts(svc))
	}

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
		r.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	} else {
		r.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"service": "visual-measure",
				"status":  "available",
			})
		})
	}

	return r
}

func analyzeImages(svc service.MeasurementService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing measurement request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := svc.AnalyzeImages(ctx, req.ProductID, req.ImageURLs)
		if err != nil {
			respondError(c, determineStatusCode(err), "measurement failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"product_id":         req.ProductID,
			"image_count":        len(req.ImageURLs),
			"confidence_score":   result.ConfidenceScore,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Measurement completed successfully")

		c.JSON(http.StatusOK, result)
	}
}

func analyzeProduct(svc service.MeasurementService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID", err)
			return
		}

		result, err := svc.AnalyzeProduct(ctx, id)
		if err != nil {
			respondError(c, determineStatusCode(err), "measurement failed", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func listProducts(svc service.MeasurementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := svc.ListProducts()
		c.JSON(http.StatusOK, models.ProductListResponse{
			Products: products,
			Count:    len(products),
		})
	}
}

func getProduct(svc service.MeasurementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID", err)
			return
		}

		product, err := svc.GetProduct(id)
		if err != nil {
			respondError(c, determineStatusCode(err), "product lookup failed", err)
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func sampleProducts(svc service.MeasurementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 5
		if raw := c.Query("count"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				respondError(c, http.StatusBadRequest, "invalid sample count",
					apperrors.NewValidationError(fmt.Sprintf("count must be between 1 and 100, got %q", raw), err))
				return
			}
			n = parsed
		}

		products := svc.SampleProducts(n)
		c.JSON(http.StatusOK, models.ProductListResponse{
			Products: products,
			Count:    len(products),
		})
	}
}

func metrics(svc service.MeasurementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Metrics())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
