package thumbpro

import "context"

// Provider identifies a remote generative backend.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderGoogle    Provider = "google"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// ImageSynthesizer generates an image from a text prompt alone.
type ImageSynthesizer interface {
	SynthesizeImage(ctx context.Context, model, prompt string, ratio AspectRatio) (*Image, error)
}

// ImageEditor generates an image from a prompt plus reference images in a single
// multimodal call.
type ImageEditor interface {
	EditImage(ctx context.Context, model, prompt string, refs []ReferenceImage, ratio AspectRatio) (*Image, error)
}

// VisionDescriber produces a textual description of reference images.
type VisionDescriber interface {
	DescribeImages(ctx context.Context, model, instruction string, refs []ReferenceImage) (string, error)
}
