// Package anthropic adapts the Anthropic Claude API to the thumbpro vision
// describer interface.
//
// Claude models cannot generate images; they serve the describe step of the
// describe-then-synthesize edit strategy, where a textual description of the
// reference images is folded into a fresh text-to-image prompt.
//
// # Basic Usage
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	text, err := client.DescribeImages(ctx, "claude-sonnet-4-5",
//	    prompt.DescribeInstruction(), refs)
//
// A "refusal" stop reason is reported as a policy block; a reply without text
// is a malformed response, which lets the model selector move on to the next
// vision candidate.
package anthropic
