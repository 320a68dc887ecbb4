// Package model provides model constants and the candidate table that decides
// which backend models are tried for each role, and in which order.
//
// # Roles
//
//   - RoleImageSynthesis: text-to-image generation (Imagen, Gemini image, gpt-image, DALL-E)
//   - RoleImageEdit: generation conditioned on inline reference images (Gemini image)
//   - RoleVisionDescribe: textual description of reference images (Gemini, Claude)
//
// # Candidate Tables
//
// DefaultTable ships the built-in priority order. Override it with a YAML file:
//
//	image_synthesis:
//	  - {provider: google, id: imagen-4.0-generate-001}
//	  - {provider: openai, id: gpt-image-1}
//	image_edit:
//	  - {provider: google, id: gemini-2.5-flash-image}
//	vision_describe:
//	  - {provider: google, id: gemini-2.5-flash}
//	  - {provider: anthropic, id: claude-sonnet-4-5}
//
//	table, err := model.LoadTable("models.yaml")
//	c, err := client.New(ctx, client.Config{
//	    APIKeys: client.APIKeys{Google: os.Getenv("GEMINI_API_KEY")},
//	    Models:  table,
//	})
//
// Roles missing from the file keep their default candidates.
//
// # Pricing Information
//
// Image models carry pricing for cost estimation:
//
//	cost := model.EstimateImageCost("imagen-4.0-generate-001")
package model
