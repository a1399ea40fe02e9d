package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// CaptionerKind selects the semantic captioner implementation.
type CaptionerKind string

const (
	CaptionerNone   CaptionerKind = "none"
	CaptionerOllama CaptionerKind = "ollama"
	CaptionerGemini CaptionerKind = "gemini"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	AnalysisTimeout    time.Duration
	MaxRequestBodySize int64

	// Image pipeline limits
	MaxImageSide        int
	MaxImagesPerProduct int
	ImageWorkers        int

	// Dataset / frontend
	DatasetPath string
	StaticDir   string

	// Captioning
	Captioner    CaptionerKind
	OllamaURL    string
	OllamaModel  string
	GeminiAPIKey string
	GeminiModel  string

	// Optional Azure blob image source
	AzureStorageAccount string
	AzureStorageKey     string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureEnabled reports whether blob-backed image sources are configured.
func (c *Config) AzureEnabled() bool {
	return c.AzureStorageAccount != "" && c.AzureStorageKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 30*time.Second),
		AnalysisTimeout:    parseDurationOrDefault("ANALYSIS_TIMEOUT", 45*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1*1024*1024), // 1MB, JSON bodies only

		MaxImageSide:        int(parseIntOrDefault("MAX_IMAGE_SIDE", 1024)),
		MaxImagesPerProduct: int(parseIntOrDefault("MAX_IMAGES_PER_PRODUCT", 10)),
		ImageWorkers:        int(parseIntOrDefault("IMAGE_WORKERS", 4)),

		DatasetPath: getEnvOrDefault("DATASET_PATH", "data/product_images.parquet"),
		StaticDir:   os.Getenv("STATIC_DIR"),

		Captioner:    CaptionerKind(strings.ToLower(getEnvOrDefault("CAPTIONER", string(CaptionerNone)))),
		OllamaURL:    getEnvOrDefault("OLLAMA_URL", "http://127.0.0.1:11434"),
		OllamaModel:  getEnvOrDefault("OLLAMA_MODEL", "llava:7b"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),

		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, analysis=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.AnalysisTimeout)
	}
	if cfg.MaxImageSide < 16 {
		return nil, fmt.Errorf("MAX_IMAGE_SIDE too small: %d", cfg.MaxImageSide)
	}
	if cfg.MaxImagesPerProduct < 1 {
		return nil, fmt.Errorf("MAX_IMAGES_PER_PRODUCT must be >= 1 (got %d)", cfg.MaxImagesPerProduct)
	}
	if cfg.ImageWorkers < 1 {
		return nil, fmt.Errorf("IMAGE_WORKERS must be >= 1 (got %d)", cfg.ImageWorkers)
	}

	switch cfg.Captioner {
	case CaptionerNone, CaptionerOllama, CaptionerGemini:
	default:
		return nil, fmt.Errorf("invalid CAPTIONER: %q (want none, ollama or gemini)", cfg.Captioner)
	}
	if cfg.Captioner == CaptionerGemini && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("CAPTIONER=gemini requires GEMINI_API_KEY")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
