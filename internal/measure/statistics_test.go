package measure

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func solidImage(width, height int, c color.RGBA) *ImageBuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return &ImageBuffer{Pixels: img, Format: "PNG", Width: width, Height: height}
}

func TestStatisticsExtractor_UniformImage(t *testing.T) {
	tests := []struct {
		name           string
		color          color.RGBA
		wantBrightness float64
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0.0},
		{"white", color.RGBA{255, 255, 255, 255}, 1.0},
		{"mid grey", color.RGBA{128, 128, 128, 255}, 128.0 / 255.0},
	}

	extractor := NewStatisticsExtractor()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := extractor.Extract(solidImage(32, 32, tt.color))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}

			if math.Abs(stats.Brightness-tt.wantBrightness) > 0.01 {
				t.Errorf("Expected brightness %.3f, got %.3f", tt.wantBrightness, stats.Brightness)
			}
			// A uniform image has zero spread across all channel samples.
			if stats.ColorVariance > 0.001 {
				t.Errorf("Expected zero color variance for uniform image, got %.5f", stats.ColorVariance)
			}
		})
	}
}

func TestStatisticsExtractor_TwoToneImage(t *testing.T) {
	// Half black, half white: mean 0.5, population std dev 0.5.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if y < 8 {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}

	extractor := NewStatisticsExtractor()
	stats, err := extractor.Extract(&ImageBuffer{Pixels: img, Format: "PNG", Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if math.Abs(stats.Brightness-0.5) > 0.01 {
		t.Errorf("Expected brightness 0.5, got %.3f", stats.Brightness)
	}
	if math.Abs(stats.ColorVariance-0.5) > 0.01 {
		t.Errorf("Expected color variance 0.5, got %.3f", stats.ColorVariance)
	}
}

func TestStatisticsExtractor_MixedChannels(t *testing.T) {
	// Pure red pixels: channel samples are {1, 0, 0} per pixel.
	// Mean = 1/3, population std dev = sqrt(2)/3.
	extractor := NewStatisticsExtractor()
	stats, err := extractor.Extract(solidImage(8, 8, color.RGBA{255, 0, 0, 255}))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if math.Abs(stats.Brightness-1.0/3.0) > 0.01 {
		t.Errorf("Expected brightness 0.333, got %.3f", stats.Brightness)
	}
	want := math.Sqrt(2) / 3
	if math.Abs(stats.ColorVariance-want) > 0.01 {
		t.Errorf("Expected color variance %.3f, got %.3f", want, stats.ColorVariance)
	}
}

func TestStatisticsExtractor_EmptyImage(t *testing.T) {
	extractor := NewStatisticsExtractor()

	if _, err := extractor.Extract(nil); err != ErrEmptyImage {
		t.Errorf("Expected ErrEmptyImage for nil buffer, got %v", err)
	}
	if _, err := extractor.Extract(&ImageBuffer{}); err != ErrEmptyImage {
		t.Errorf("Expected ErrEmptyImage for nil pixels, got %v", err)
	}

	zero := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := extractor.Extract(&ImageBuffer{Pixels: zero}); err != ErrEmptyImage {
		t.Errorf("Expected ErrEmptyImage for zero-size image, got %v", err)
	}
}

func TestStatisticsExtractor_Deterministic(t *testing.T) {
	// The parallel strip scan must not change the result between runs.
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), uint8((x + y) * 2), 255})
		}
	}
	buf := &ImageBuffer{Pixels: img, Format: "PNG", Width: 64, Height: 48}

	extractor := NewStatisticsExtractor()
	first, err := extractor.Extract(buf)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		stats, err := extractor.Extract(buf)
		if err != nil {
			t.Fatalf("Extract failed on run %d: %v", i, err)
		}
		if math.Abs(stats.Brightness-first.Brightness) > 1e-9 ||
			math.Abs(stats.ColorVariance-first.ColorVariance) > 1e-9 {
			t.Errorf("Run %d differs: got (%.9f, %.9f), want (%.9f, %.9f)",
				i, stats.Brightness, stats.ColorVariance, first.Brightness, first.ColorVariance)
		}
	}
}
