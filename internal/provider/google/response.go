package google

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	ai "github.com/mchlmayer/thumbpro"
)

const defaultImageMIME = "image/png"

// safetyFinishReasons are terminal statuses that mean the output was withheld
// on content-safety grounds.
var safetyFinishReasons = map[string]bool{
	string(genai.FinishReasonSafety):            true,
	string(genai.FinishReasonProhibitedContent): true,
	string(genai.FinishReasonBlocklist):         true,
	string(genai.FinishReasonSPII):              true,
	"IMAGE_SAFETY":                              true,
	"IMAGE_PROHIBITED_CONTENT":                  true,
}

// noStatus reports whether a finish reason carries no terminal status beyond
// normal completion.
func noStatus(reason string) bool {
	return reason == "" || reason == string(genai.FinishReasonStop) || reason == "FINISH_REASON_UNSPECIFIED"
}

// imageFromImagen extracts the first non-empty image from an Imagen response.
func imageFromImagen(resp *genai.GenerateImagesResponse, model string) (*ai.Image, error) {
	if resp == nil {
		return nil, ai.NewMalformedResponseError("empty response").WithModel(model)
	}

	var filtered string
	for _, gi := range resp.GeneratedImages {
		if gi == nil {
			continue
		}
		if gi.Image != nil && len(gi.Image.ImageBytes) > 0 {
			mime := gi.Image.MIMEType
			if mime == "" {
				mime = defaultImageMIME
			}
			return &ai.Image{Data: gi.Image.ImageBytes, MIMEType: mime, Model: model}, nil
		}
		if gi.RAIFilteredReason != "" && filtered == "" {
			filtered = gi.RAIFilteredReason
		}
	}

	if filtered != "" {
		return nil, ai.NewPolicyBlockedError("image filtered by responsible-AI policy", filtered).WithModel(model)
	}
	return nil, ai.NewMalformedResponseError("empty response").WithModel(model)
}

// imageFromContent extracts the first inline image part of the first candidate.
// Without one, the candidate's finish reason decides the error kind.
func imageFromContent(resp *genai.GenerateContentResponse, model string) (*ai.Image, error) {
	cand, err := firstCandidate(resp, model)
	if err != nil {
		return nil, err
	}

	var text []string
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			if blob := part.InlineData; blob != nil && strings.HasPrefix(blob.MIMEType, "image/") && len(blob.Data) > 0 {
				return &ai.Image{Data: blob.Data, MIMEType: blob.MIMEType, Model: model}, nil
			}
			if part.Text != "" && !part.Thought {
				text = append(text, part.Text)
			}
		}
	}

	return nil, finishError(string(cand.FinishReason), strings.Join(text, " "), model)
}

// textFromContent extracts the first non-empty text part of the first candidate.
func textFromContent(resp *genai.GenerateContentResponse, model string) (string, error) {
	cand, err := firstCandidate(resp, model)
	if err != nil {
		return "", err
	}

	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part != nil && !part.Thought && strings.TrimSpace(part.Text) != "" {
				return strings.TrimSpace(part.Text), nil
			}
		}
	}

	return "", finishError(string(cand.FinishReason), "", model)
}

func firstCandidate(resp *genai.GenerateContentResponse, model string) (*genai.Candidate, error) {
	if resp == nil {
		return nil, ai.NewMalformedResponseError("empty response").WithModel(model)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason := string(resp.PromptFeedback.BlockReason)
			return nil, ai.NewPolicyBlockedError("prompt blocked by content policy", reason).WithModel(model)
		}
		return nil, ai.NewMalformedResponseError("response has no candidates").WithModel(model)
	}
	return resp.Candidates[0], nil
}

// finishError classifies a candidate that produced no usable part.
// Returned text, if any, is kept as diagnostic detail.
func finishError(reason, text, model string) error {
	var e *ai.Error
	switch {
	case noStatus(reason):
		e = ai.NewMalformedResponseError("no content")
	case safetyFinishReasons[reason]:
		e = ai.NewPolicyBlockedError("generation blocked by content policy", reason)
	default:
		e = ai.NewInterruptedError(reason)
	}
	if text != "" {
		e.Cause = fmt.Errorf("model replied: %s", text)
	}
	return e.WithModel(model)
}
