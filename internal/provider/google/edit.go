package google

import (
	"context"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

// EditImage generates an image from reference images plus an edit prompt in a
// single multimodal call. Reference parts precede the prompt.
func (c *Client) EditImage(ctx context.Context, model, prompt string, refs []ai.ReferenceImage, ratio ai.AspectRatio) (*ai.Image, error) {
	parts := append(referenceParts(refs), genai.NewPartFromText(prompt))
	return c.generateImageContent(ctx, model, parts, ratio)
}

func referenceParts(refs []ai.ReferenceImage) []*genai.Part {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		parts = append(parts, genai.NewPartFromBytes(ref.Data, ref.MIMEType))
	}
	return parts
}
