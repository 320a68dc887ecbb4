// Package google adapts the Google GenAI SDK (Gemini API backend) to the
// thumbpro backend interfaces: Imagen and Gemini image synthesis, multimodal
// reference edits, and Gemini vision descriptions.
package google

import (
	"context"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

// modelsAPI is the subset of *genai.Models the adapter calls.
type modelsAPI interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI SDK to implement the thumbpro backend interfaces.
type Client struct {
	models modelsAPI
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ai.NewConfigurationError("Google API key is required", nil)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ai.NewConfigurationError("create Google GenAI client", err)
	}
	return NewFromGenAI(client), nil
}

// NewFromGenAI creates a client over an existing GenAI SDK client, whichever
// backend it was configured for.
func NewFromGenAI(client *genai.Client) *Client {
	return &Client{models: client.Models}
}

// newWithModels creates a client over an arbitrary models implementation.
func newWithModels(m modelsAPI) *Client {
	return &Client{models: m}
}

var (
	_ ai.ImageSynthesizer = (*Client)(nil)
	_ ai.ImageEditor      = (*Client)(nil)
	_ ai.VisionDescriber  = (*Client)(nil)
)
