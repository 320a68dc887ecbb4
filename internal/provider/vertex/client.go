package vertex

import (
	"context"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/internal/provider/google"
)

// DefaultLocation is used when no location is configured.
const DefaultLocation = "us-central1"

// New creates a Google adapter that reaches Imagen and Gemini through Vertex AI
// in the given project and location.
// Uses Application Default Credentials (ADC) for authentication.
func New(ctx context.Context, project, location string) (*google.Client, error) {
	if project == "" {
		return nil, ai.NewConfigurationError("Vertex AI project is required", nil)
	}
	if location == "" {
		location = DefaultLocation
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, ai.NewConfigurationError("create Vertex AI client (check Application Default Credentials)", err)
	}
	return google.NewFromGenAI(client), nil
}
