package model

import ai "github.com/mchlmayer/thumbpro"

// VisionModel represents a multimodal chat model used to describe reference images.
type VisionModel struct {
	id       string
	provider ai.Provider
}

// String returns the API identifier for this model.
func (m VisionModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m VisionModel) Provider() ai.Provider { return m.provider }

// Candidate returns the model as a vision-describe candidate.
func (m VisionModel) Candidate() Candidate {
	return Candidate{ID: m.id, Provider: m.provider, Role: RoleVisionDescribe}
}

var (
	Gemini25Flash     = VisionModel{id: "gemini-2.5-flash", provider: ai.ProviderGoogle}
	Gemini25FlashLite = VisionModel{id: "gemini-2.5-flash-lite", provider: ai.ProviderGoogle}
	ClaudeSonnet45    = VisionModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}

	// DefaultVisionModel is the recommended default describe model.
	DefaultVisionModel = Gemini25Flash
)

// visionModels lists every vision model constant.
var visionModels = []VisionModel{Gemini25Flash, Gemini25FlashLite, ClaudeSonnet45}
