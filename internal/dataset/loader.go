// Package dataset loads the eyewear product catalog that backs the
// product lookup endpoints.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"
)

// Loader reads product records from a catalog file.
type Loader struct {
	datasetPath string
	logger      *logrus.Logger
}

func NewLoader(datasetPath string, logger *logrus.Logger) *Loader {
	return &Loader{
		datasetPath: datasetPath,
		logger:      logger,
	}
}

// Load loads products from a catalog file (JSONL or Parquet).
func (l *Loader) Load() ([]Product, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (l *Loader) loadJSONL() ([]Product, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var products []Product
	scanner := bufio.NewScanner(file)

	// Rows carry full image URL lists, so allow long lines.
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var product Product
		if err := json.Unmarshal(line, &product); err != nil {
			return nil, fmt.Errorf("failed to parse catalog line %d: %w", lineNum, err)
		}

		products = append(products, product)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"path":     l.datasetPath,
		"products": len(products),
	}).Info("Loaded product catalog")

	return products, nil
}

func (l *Loader) loadParquet() ([]Product, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet catalog: %w", err)
	}

	reader := parquet.NewGenericReader[Product](pf)
	defer reader.Close()

	var products []Product
	rows := make([]Product, 128)

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			products = append(products, rows[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet catalog: %w", err)
		}
	}

	l.logger.WithFields(logrus.Fields{
		"path":     l.datasetPath,
		"products": len(products),
	}).Info("Loaded product catalog")

	return products, nil
}
