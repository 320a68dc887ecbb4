package openai

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/openai/openai-go"

	ai "github.com/mchlmayer/thumbpro"
)

// SynthesizeImage generates one image from a text prompt.
// The aspect ratio is mapped to the nearest size the model supports.
func (c *Client) SynthesizeImage(ctx context.Context, model, prompt string, ratio ai.AspectRatio) (*ai.Image, error) {
	params := openai.ImageGenerateParams{
		Model:  openai.ImageModel(model),
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize(sizeFor(model, ratio)),
	}
	// gpt-image models always return base64 and reject response_format
	if isDallE(model) {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := c.images.Generate(ctx, params)
	if err != nil {
		return nil, wrapError(err, model)
	}
	return imageFromResponse(resp, model)
}

// imageFromResponse decodes the first entry carrying base64 data.
func imageFromResponse(resp *openai.ImagesResponse, model string) (*ai.Image, error) {
	if resp == nil {
		return nil, ai.NewMalformedResponseError("empty response").WithModel(model)
	}
	for _, d := range resp.Data {
		if d.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			e := ai.NewMalformedResponseError("image payload is not valid base64").WithModel(model)
			e.Cause = err
			return nil, e
		}
		if len(data) > 0 {
			return &ai.Image{Data: data, MIMEType: "image/png", Model: model}, nil
		}
	}
	return nil, ai.NewMalformedResponseError("empty response").WithModel(model)
}

func isDallE(model string) bool {
	return strings.HasPrefix(model, "dall-e")
}

// sizeFor maps an aspect ratio to a supported output size.
func sizeFor(model string, ratio ai.AspectRatio) string {
	switch ratio.Orientation() {
	case "landscape":
		if isDallE(model) {
			return "1792x1024"
		}
		return "1536x1024"
	case "portrait":
		if isDallE(model) {
			return "1024x1792"
		}
		return "1024x1536"
	default:
		return "1024x1024"
	}
}
