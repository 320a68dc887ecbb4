package google

import (
	"context"
	"strings"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

// SynthesizeImage generates one image from a text prompt. Imagen models use the
// image generation endpoint; Gemini image models use content generation with
// image output.
func (c *Client) SynthesizeImage(ctx context.Context, model, prompt string, ratio ai.AspectRatio) (*ai.Image, error) {
	if !isImagen(model) {
		parts := []*genai.Part{genai.NewPartFromText(prompt)}
		return c.generateImageContent(ctx, model, parts, ratio)
	}

	config := &genai.GenerateImagesConfig{
		NumberOfImages:   1,
		AspectRatio:      ratio.String(),
		OutputMIMEType:   defaultImageMIME,
		IncludeRAIReason: true,
	}

	resp, err := c.models.GenerateImages(ctx, model, prompt, config)
	if err != nil {
		return nil, wrapError(err, model)
	}
	return imageFromImagen(resp, model)
}

// generateImageContent requests a single image candidate from a Gemini model.
func (c *Client) generateImageContent(ctx context.Context, model string, parts []*genai.Part, ratio ai.AspectRatio) (*ai.Image, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		CandidateCount:     1,
		ResponseModalities: []string{"IMAGE", "TEXT"},
		ImageConfig:        &genai.ImageConfig{AspectRatio: ratio.String()},
		SafetySettings:     safetySettings(),
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, wrapError(err, model)
	}
	return imageFromContent(resp, model)
}

func isImagen(model string) bool {
	return strings.HasPrefix(model, "imagen-")
}

// safetySettings blocks medium-and-above harm in every category.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, len(categories))
	for i, category := range categories {
		settings[i] = &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		}
	}
	return settings
}
