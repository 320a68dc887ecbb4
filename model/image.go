package model

import ai "github.com/mchlmayer/thumbpro"

// ImageModel represents an image generation model from any provider.
type ImageModel struct {
	id       string
	provider ai.Provider
	pricing  ImagePricing
}

// String returns the API identifier for this model.
func (m ImageModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ImageModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ImageModel) Pricing() ImagePricing { return m.pricing }

// Candidate returns the model as a candidate for role.
func (m ImageModel) Candidate(role Role) Candidate {
	return Candidate{ID: m.id, Provider: m.provider, Role: role}
}

// Google Imagen and Gemini Image Models
// Model pricing last verified: October 1, 2026
var (
	// Imagen 4 Series
	Imagen4      = ImageModel{id: "imagen-4.0-generate-001", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.04}}
	Imagen4Fast  = ImageModel{id: "imagen-4.0-fast-generate-001", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.02}}
	Imagen4Ultra = ImageModel{id: "imagen-4.0-ultra-generate-001", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.06}}

	// Gemini native image output, accepts inline reference images
	Gemini25FlashImage        = ImageModel{id: "gemini-2.5-flash-image", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.039}}
	Gemini20FlashImagePreview = ImageModel{id: "gemini-2.0-flash-preview-image-generation", provider: ai.ProviderGoogle, pricing: ImagePricing{PerImage: 0.039}}

	// DefaultImagenModel is the recommended default Google synthesis model.
	DefaultImagenModel = Imagen4
)

// OpenAI Image Models
// Model pricing last verified: October 1, 2026
var (
	GPTImage1     = ImageModel{id: "gpt-image-1", provider: ai.ProviderOpenAI, pricing: ImagePricing{LowQuality: 0.011, MediumQuality: 0.042, HighQuality: 0.167}}
	GPTImage1Mini = ImageModel{id: "gpt-image-1-mini", provider: ai.ProviderOpenAI, pricing: ImagePricing{LowQuality: 0.005, MediumQuality: 0.013, HighQuality: 0.052}}
	DallE3        = ImageModel{id: "dall-e-3", provider: ai.ProviderOpenAI, pricing: ImagePricing{PerImage: 0.08}}

	// DefaultGPTImageModel is the recommended default OpenAI image model.
	DefaultGPTImageModel = GPTImage1
)

var imageModels = []ImageModel{
	Imagen4, Imagen4Fast, Imagen4Ultra, Gemini25FlashImage, Gemini20FlashImagePreview,
	GPTImage1, GPTImage1Mini, DallE3,
}

// LookupImageModel returns the known image model with the given API identifier.
func LookupImageModel(id string) (ImageModel, bool) {
	for _, m := range imageModels {
		if m.id == id {
			return m, true
		}
	}
	return ImageModel{}, false
}
