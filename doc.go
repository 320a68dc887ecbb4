// Package thumbpro generates and edits YouTube-thumbnail images through remote
// generative-image APIs.
//
// The root package defines the shared vocabulary: aspect ratios, reference and
// generated images, the backend interfaces each provider adapter implements, and
// the classified error taxonomy every operation reports failures with.
//
// # Core Interfaces
//
//   - [ImageSynthesizer]: text-to-image generation
//   - [ImageEditor]: multimodal generation conditioned on reference images
//   - [VisionDescriber]: textual description of reference images
//
// Use the [github.com/mchlmayer/thumbpro/client] package as the entry point and
// the [github.com/mchlmayer/thumbpro/model] package to configure which models are
// tried, and in which order.
//
// # Basic Usage
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
//	img, err := c.GenerateImageWithText(ctx, "a cat astronaut", thumbpro.AspectLandscape)
//	if err != nil {
//	    var e *thumbpro.Error
//	    if errors.As(err, &e) {
//	        fmt.Println(e.UserMessage())
//	    }
//	    return
//	}
//	fmt.Println(img.DataURL())
//
// # Reference Edits
//
// Pass one or more reference images, typically cropped to the target ratio:
//
//	ref, _ := thumbpro.ParseDataURL(croppedDataURL)
//	img, err := c.GenerateImageWithReference(ctx, "add neon lights",
//	    []thumbpro.ReferenceImage{ref}, thumbpro.AspectSquare)
//
// # Error Handling
//
// Every error returned by the client is a [*Error] whose [ErrorKind] says how it
// was handled: quota errors were retried with backoff before surfacing, model
// availability errors caused fallback to the next candidate, and policy blocks are
// never retried.
package thumbpro
