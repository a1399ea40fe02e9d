package measure

import (
	"math"
	"runtime"
	"sync"
)

// statisticsExtractor implements StatisticsExtractor with parallel
// strip-based pixel scans.
type statisticsExtractor struct{}

// NewStatisticsExtractor creates a statistics extractor.
func NewStatisticsExtractor() StatisticsExtractor {
	return &statisticsExtractor{}
}

// Extract computes the mean and population standard deviation of all
// normalized (0-1) channel intensities over the whole image.
func (e *statisticsExtractor) Extract(buf *ImageBuffer) (Statistics, error) {
	if buf == nil || buf.Pixels == nil {
		return Statistics{}, ErrEmptyImage
	}

	img := buf.Pixels
	bounds := img.Bounds()
	height := bounds.Dy()
	if bounds.Dx() == 0 || height == 0 {
		return Statistics{}, ErrEmptyImage
	}

	numWorkers := runtime.NumCPU()
	if height < numWorkers {
		numWorkers = height
	}
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	type stripResult struct {
		sum, sumSq float64
		samples    int
	}

	results := make(chan stripResult, numWorkers)
	var wg sync.WaitGroup

	// Process the image in horizontal strips for cache locality.
	for i := 0; i < numWorkers; i++ {
		startY := bounds.Min.Y + i*rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > bounds.Max.Y {
			endY = bounds.Max.Y
		}
		if startY >= endY {
			continue
		}

		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()

			var sum, sumSq float64
			samples := 0

			for y := startY; y < endY; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					r, g, b, _ := img.At(x, y).RGBA()
					// 16-bit channels normalized to [0,1].
					rf := float64(r) / 65535.0
					gf := float64(g) / 65535.0
					bf := float64(b) / 65535.0

					sum += rf + gf + bf
					sumSq += rf*rf + gf*gf + bf*bf
					samples += 3
				}
			}

			results <- stripResult{sum, sumSq, samples}
		}(startY, endY)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum, sumSq float64
	samples := 0
	for res := range results {
		sum += res.sum
		sumSq += res.sumSq
		samples += res.samples
	}

	if samples == 0 {
		return Statistics{}, ErrEmptyImage
	}

	n := float64(samples)
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}

	return Statistics{
		Brightness:    mean,
		ColorVariance: math.Sqrt(variance),
	}, nil
}
