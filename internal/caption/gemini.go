package caption

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/framesight/visual-measure/internal/measure"
)

// GeminiCaptioner describes images through the Gemini API. The client
// is created once at construction and only read afterwards, so Caption
// is safe to call from concurrent workers.
type GeminiCaptioner struct {
	model  string
	client *genai.Client
}

func NewGeminiCaptioner(apiKey, model string) (*GeminiCaptioner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini captioner requires an API key")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCaptioner{model: model, client: client}, nil
}

func (c *GeminiCaptioner) Caption(ctx context.Context, img *measure.ImageBuffer) (string, error) {
	payload, err := encodeJPEG(img)
	if err != nil {
		return "", err
	}

	parts := []*genai.Part{
		{
			InlineData: &genai.Blob{
				MIMEType: "image/jpeg",
				Data:     payload,
			},
		},
		{Text: captionPrompt},
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate caption: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}
