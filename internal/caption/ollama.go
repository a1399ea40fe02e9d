package caption

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/framesight/visual-measure/internal/measure"
)

// OllamaCaptioner describes images through a local Ollama vision model.
type OllamaCaptioner struct {
	client *api.Client
	model  string
}

// NewOllamaCaptioner creates an Ollama-backed captioner. Any path on
// ollamaURL (like /api/chat) is dropped; the API client wants the base.
func NewOllamaCaptioner(ollamaURL, model string) (*OllamaCaptioner, error) {
	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %v", err)
	}

	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	return &OllamaCaptioner{
		client: api.NewClient(baseURL, http.DefaultClient),
		model:  model,
	}, nil
}

func (c *OllamaCaptioner) Caption(ctx context.Context, img *measure.ImageBuffer) (string, error) {
	payload, err := encodeJPEG(img)
	if err != nil {
		return "", err
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: captionPrompt,
				Images:  []api.ImageData{api.ImageData(payload)},
			},
		},
		Stream: &streamFalse,
	}

	var responseContent string
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %v", err)
	}

	responseContent = strings.TrimSpace(responseContent)
	if responseContent == "" {
		return "", fmt.Errorf("empty response from ollama")
	}
	return responseContent, nil
}
