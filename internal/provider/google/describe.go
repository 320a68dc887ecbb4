package google

import (
	"context"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

// DescribeImages asks a Gemini model for a textual description of the reference images.
func (c *Client) DescribeImages(ctx context.Context, model, instruction string, refs []ai.ReferenceImage) (string, error) {
	parts := append(referenceParts(refs), genai.NewPartFromText(instruction))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		CandidateCount: 1,
		SafetySettings: safetySettings(),
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", wrapError(err, model)
	}
	return textFromContent(resp, model)
}
