package caption

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/framesight/visual-measure/internal/config"
	"github.com/framesight/visual-measure/internal/measure"
)

func TestDisabledCaptioner(t *testing.T) {
	captioner := &DisabledCaptioner{}

	buf := &measure.ImageBuffer{Pixels: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	text, err := captioner.Caption(context.Background(), buf)

	if !errors.Is(err, measure.ErrCaptionerDisabled) {
		t.Errorf("Expected ErrCaptionerDisabled, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty caption, got %q", text)
	}
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.Config
		wantErr   bool
		wantType  string
	}{
		{
			name:     "none backend",
			cfg:      config.Config{Captioner: config.CaptionerNone},
			wantType: "*caption.DisabledCaptioner",
		},
		{
			name: "ollama backend",
			cfg: config.Config{
				Captioner:   config.CaptionerOllama,
				OllamaURL:   "http://127.0.0.1:11434",
				OllamaModel: "llava:7b",
			},
			wantType: "*caption.OllamaCaptioner",
		},
		{
			name: "gemini backend",
			cfg: config.Config{
				Captioner:    config.CaptionerGemini,
				GeminiAPIKey: "test-key",
				GeminiModel:  "gemini-2.0-flash",
			},
			wantType: "*caption.GeminiCaptioner",
		},
		{
			name:    "gemini without key",
			cfg:     config.Config{Captioner: config.CaptionerGemini},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.Config{Captioner: "llama.cpp"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captioner, err := NewFromConfig(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromConfig failed: %v", err)
			}

			var gotType string
			switch captioner.(type) {
			case *DisabledCaptioner:
				gotType = "*caption.DisabledCaptioner"
			case *OllamaCaptioner:
				gotType = "*caption.OllamaCaptioner"
			case *GeminiCaptioner:
				gotType = "*caption.GeminiCaptioner"
			}
			if gotType != tt.wantType {
				t.Errorf("Expected %s, got %T", tt.wantType, captioner)
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	if _, err := encodeJPEG(nil); !errors.Is(err, measure.ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for nil buffer, got %v", err)
	}
	if _, err := encodeJPEG(&measure.ImageBuffer{}); !errors.Is(err, measure.ErrEmptyImage) {
		t.Errorf("Expected ErrEmptyImage for nil pixels, got %v", err)
	}

	buf := &measure.ImageBuffer{Pixels: image.NewRGBA(image.Rect(0, 0, 4, 4)), Width: 4, Height: 4}
	payload, err := encodeJPEG(buf)
	if err != nil {
		t.Fatalf("encodeJPEG failed: %v", err)
	}
	// JPEG SOI marker
	if len(payload) < 2 || payload[0] != 0xFF || payload[1] != 0xD8 {
		t.Error("Expected JPEG payload to start with SOI marker")
	}
}
