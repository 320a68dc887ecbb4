package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/mchlmayer/thumbpro"
)

// DescribeImages asks a Claude model for a textual description of the reference images.
func (c *Client) DescribeImages(ctx context.Context, model, instruction string, refs []ai.ReferenceImage) (string, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(refs)+1)
	for _, ref := range refs {
		blocks = append(blocks, anthropic.NewImageBlockBase64(ref.MIMEType, ref.Base64()))
	}
	blocks = append(blocks, anthropic.NewTextBlock(instruction))

	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	})
	if err != nil {
		return "", wrapError(err, model)
	}
	return textFromMessage(resp, model)
}

// textFromMessage returns the first non-empty text block.
func textFromMessage(resp *anthropic.Message, model string) (string, error) {
	if resp == nil {
		return "", ai.NewMalformedResponseError("empty response").WithModel(model)
	}

	stop := string(resp.StopReason)
	if stop == "refusal" {
		return "", ai.NewPolicyBlockedError("request refused by content policy", stop).WithModel(model)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}

	if stop != "" && stop != "end_turn" && stop != "stop_sequence" {
		return "", ai.NewInterruptedError(stop).WithModel(model)
	}
	return "", ai.NewMalformedResponseError("no content").WithModel(model)
}
