// Package prompt composes the text sent to image and vision backends.
//
// Composition is pure and deterministic: the same inputs always produce the
// same prompt, and image bytes are never inspected. The aspect-ratio literal
// is written once, by the framing instruction; none of the fixed directives
// contain a ratio, and supported ratio literals are removed from user prompts
// and descriptions before they are folded in. Other digit pairs such as a
// "10:30" clock time are kept.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	ai "github.com/mchlmayer/thumbpro"
)

const (
	thumbnailStyle = "Style: a high-impact YouTube thumbnail with a bold, uncluttered composition, " +
		"vivid saturated colors, strong contrast, crisp detail and professional lighting. " +
		"Keep the main subject large and in sharp focus. Do not add small or illegible text."

	identityDirective = "Preserve the person's facial identity, facial expression, skin tone and " +
		"distinguishing features exactly as they appear in the reference. Integrate only the " +
		"requested changes and keep everything else consistent with the reference."

	describeInstruction = "Describe the reference image in dense, concrete detail so that an artist " +
		"could recreate it without seeing it. Cover the main subject and their pose, facial " +
		"appearance and expression, hair, clothing and accessories, the setting and background, " +
		"the lighting and color palette, and the camera angle. Reply with the description only."
)

// digitPair matches a whole "N:M" token; \d+ is greedy on both sides, so a
// match never starts or ends inside a longer digit run.
var digitPair = regexp.MustCompile(`\d+\s*:\s*\d+`)

// clean trims text and removes supported aspect-ratio literals from it.
func clean(text string) string {
	text = digitPair.ReplaceAllStringFunc(text, func(m string) string {
		if ai.AspectRatio(strings.Join(strings.Fields(m), "")).Valid() {
			return ""
		}
		return m
	})
	return strings.Join(strings.Fields(text), " ")
}

// framing returns the aspect-ratio instruction, the only place the ratio literal is written.
func framing(ratio ai.AspectRatio) string {
	return fmt.Sprintf("Frame the image for a %s aspect ratio (%s orientation), filling the "+
		"whole frame with no borders or letterboxing.", ratio, ratio.Orientation())
}

// ComposeTextToImage builds the prompt for pure text-to-image generation.
func ComposeTextToImage(userPrompt string, ratio ai.AspectRatio) string {
	return join(
		"Generate an image: "+clean(userPrompt),
		thumbnailStyle,
		framing(ratio),
	)
}

// ComposeReferenceEdit builds the prompt sent alongside reference images to a
// backend that edits them directly.
func ComposeReferenceEdit(userPrompt string, ratio ai.AspectRatio) string {
	return join(
		"Edit the provided reference image. Requested changes: "+clean(userPrompt),
		identityDirective,
		thumbnailStyle,
		framing(ratio),
	)
}

// DescribeInstruction returns the instruction sent to vision backends with the
// reference images.
func DescribeInstruction() string {
	return describeInstruction
}

// ComposeFromDescription folds a reference description and the requested
// changes into a fresh text-to-image prompt.
func ComposeFromDescription(description, userPrompt string, ratio ai.AspectRatio) string {
	return join(
		"Generate an image based on this reference description: "+clean(description),
		"Apply these requested changes: "+clean(userPrompt),
		identityDirective,
		thumbnailStyle,
		framing(ratio),
	)
}

func join(parts ...string) string {
	return strings.Join(parts, "\n\n")
}
