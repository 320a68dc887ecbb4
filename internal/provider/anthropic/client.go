package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	ai "github.com/mchlmayer/thumbpro"
)

// messagesAPI is the subset of anthropic.MessageService the adapter calls.
type messagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client wraps the Anthropic SDK to implement ai.VisionDescriber.
type Client struct {
	messages  messagesAPI
	maxTokens int64
}

// New creates a new Anthropic client with the given API key.
// SDK retries are disabled; the caller's backoff scheduler owns every retry.
func New(apiKey string, opts ...option.RequestOption) *Client {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)...)
	return newWithMessages(&client.Messages)
}

func newWithMessages(messages messagesAPI) *Client {
	return &Client{messages: messages, maxTokens: 1024}
}

var _ ai.VisionDescriber = (*Client)(nil)
