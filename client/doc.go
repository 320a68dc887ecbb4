// Package client orchestrates thumbnail image generation across candidate models.
//
// The Client combines the backoff scheduler, the model selector, the prompt
// composer and the provider adapters into two operations:
//
//   - GenerateImageWithText: text prompt to image
//   - GenerateImageWithReference: prompt plus reference images to image
//
// # Basic Usage
//
// Load configuration from the environment (and an optional .env file):
//
//	cfg, err := client.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := client.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img, err := c.GenerateImageWithText(ctx, "a cat astronaut", ai.AspectLandscape)
//
// # Resilience
//
// Each candidate list in the model table is ordered by preference. A candidate
// that reports itself unavailable is skipped immediately in favor of the next
// one, with no delay, and is not tried again for the rest of the request.
// Quota errors and transient transport errors restart the whole pipeline after
// an exponential backoff delay, up to RetryConfig.MaxAttempts. Policy blocks,
// malformed responses and interruptions are terminal.
//
// Every failure returned by the client is an *ai.Error; use ai.KindOf or
// errors.As to inspect it:
//
//	if ai.IsKind(err, ai.KindPolicyBlocked) {
//	    fmt.Println(err.(*ai.Error).UserMessage())
//	}
//
// # Reference Edits
//
// With EditStrategyDirect (the default) the references and the edit prompt go
// to a multimodal image model in one call. With EditStrategyDescribe a vision
// model first describes the references, and an image model then synthesizes a
// new image from that description. In both cases a retry re-runs every step.
//
// # Events
//
// Provide an Events channel to observe request lifecycle, retries and fallbacks:
//
//	events := make(chan client.Event, 100)
//	c, _ := client.New(ctx, client.Config{APIKeys: keys, Events: events})
//	go func() {
//	    for e := range events {
//	        log.Printf("%s %s %s", e.Type, e.Operation, e.Model)
//	    }
//	}()
//
// Events are sent without blocking; a full channel drops them.
package client
