package model

// ImagePricing contains image generation pricing (USD).
// Different providers use different pricing models.
type ImagePricing struct {
	// PerImage is a flat per-image price (Google, DALL-E).
	PerImage float64
	// LowQuality is the price for low quality images (OpenAI gpt-image).
	LowQuality float64
	// MediumQuality is the price for medium quality images (OpenAI gpt-image).
	MediumQuality float64
	// HighQuality is the price for high quality images (OpenAI gpt-image).
	HighQuality float64
}

// HasQualityTiers returns true if the model has quality-based pricing tiers.
func (p ImagePricing) HasQualityTiers() bool {
	return p.LowQuality > 0 || p.MediumQuality > 0 || p.HighQuality > 0
}

// HasFlatPricing returns true if the model uses flat per-image pricing.
func (p ImagePricing) HasFlatPricing() bool {
	return p.PerImage > 0
}

// Estimate returns the expected cost of one image: the flat price, or the
// medium tier for quality-priced models (the adapters request auto quality).
func (p ImagePricing) Estimate() float64 {
	if p.HasFlatPricing() {
		return p.PerImage
	}
	return p.MediumQuality
}

// EstimateImageCost returns the estimated cost of one image from the model with
// the given id, or 0 for unknown models.
func EstimateImageCost(id string) float64 {
	m, ok := LookupImageModel(id)
	if !ok {
		return 0
	}
	return m.pricing.Estimate()
}
