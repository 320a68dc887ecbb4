// Package openai adapts the OpenAI Images API (gpt-image and DALL-E models) to
// the thumbpro image synthesis interface.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	ai "github.com/mchlmayer/thumbpro"
)

// imagesAPI is the subset of openai.ImageService the adapter calls.
type imagesAPI interface {
	Generate(ctx context.Context, body openai.ImageGenerateParams, opts ...option.RequestOption) (*openai.ImagesResponse, error)
}

// Client wraps the OpenAI SDK to implement ai.ImageSynthesizer.
type Client struct {
	images imagesAPI
}

// New creates a new OpenAI client with the given API key.
// SDK retries are disabled; the caller's backoff scheduler owns every retry.
func New(apiKey string, opts ...option.RequestOption) *Client {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)...)
	return &Client{images: &client.Images}
}

func newWithImages(images imagesAPI) *Client {
	return &Client{images: images}
}

var _ ai.ImageSynthesizer = (*Client)(nil)
