package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	ai "github.com/mchlmayer/thumbpro"
)

// userText draws prompts of words mixed with aspect-ratio literals, as users
// and vision models sometimes write them.
func userText() *rapid.Generator[string] {
	ratios := make([]string, 0, len(ai.AspectRatios))
	for _, r := range ai.AspectRatios {
		ratios = append(ratios, r.String(), strings.Replace(r.String(), ":", " : ", 1))
	}
	token := rapid.OneOf(
		rapid.StringMatching(`[a-zA-Z,.!']{1,12}`),
		rapid.SampledFrom(ratios),
	)
	return rapid.Custom(func(t *rapid.T) string {
		return strings.Join(rapid.SliceOfN(token, 1, 12).Draw(t, "tokens"), " ")
	})
}

func TestComposeTextToImage(t *testing.T) {
	got := ComposeTextToImage("  a cat astronaut ", ai.AspectLandscape)

	assert.True(t, strings.HasPrefix(got, "Generate an image: a cat astronaut\n"))
	assert.Contains(t, got, "16:9")
	assert.Contains(t, got, "landscape orientation")
	assert.NotContains(t, got, "reference")
}

func TestComposeReferenceEdit(t *testing.T) {
	got := ComposeReferenceEdit("add neon lights", ai.AspectSquare)

	assert.Contains(t, got, "add neon lights")
	assert.Contains(t, got, "1:1")
	assert.Contains(t, got, "facial expression")
	assert.Contains(t, got, "square orientation")
}

func TestComposeFromDescription(t *testing.T) {
	got := ComposeFromDescription("a smiling man in a red hoodie", "make it night time", ai.AspectPortrait)

	assert.Contains(t, got, "a smiling man in a red hoodie")
	assert.Contains(t, got, "make it night time")
	assert.Contains(t, got, "9:16")
	assert.Contains(t, got, "Preserve the person's facial identity")
}

func TestComposeRemovesRatioLiteralsFromUserText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"same ratio", "a 16:9 frame of a cat", "a frame of a cat"},
		{"conflicting ratio", "vertical 9:16 poster, bold", "vertical poster, bold"},
		{"spaced literal", "square 1 : 1 crop", "square crop"},
		{"clock time kept", "a clock showing 10:30", "a clock showing 10:30"},
		{"longer digit run kept", "scoreboard 116:9", "scoreboard 116:9"},
		{"whitespace collapsed", "  neon\n\tlights  ", "neon lights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clean(tt.in))
		})
	}

	got := ComposeFromDescription("a man framed 4:3 in a 16:9 shot", "make it 16:9 please", ai.AspectLandscape)
	assert.Equal(t, 1, strings.Count(got, "16:9"))
	assert.NotContains(t, got, "4:3")
}

func TestDescribeInstruction(t *testing.T) {
	got := DescribeInstruction()
	for _, word := range []string{"subject", "expression", "clothing", "setting", "lighting"} {
		assert.Contains(t, got, word)
	}
}

func TestComposedPromptsContainRatioExactlyOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ratio := rapid.SampledFrom(ai.AspectRatios).Draw(t, "ratio")
		user := userText().Draw(t, "prompt")
		desc := userText().Draw(t, "description")

		for name, p := range map[string]string{
			"text":        ComposeTextToImage(user, ratio),
			"edit":        ComposeReferenceEdit(user, ratio),
			"description": ComposeFromDescription(desc, user, ratio),
		} {
			if n := strings.Count(p, ratio.String()); n != 1 {
				t.Fatalf("%s prompt contains %q %d times:\n%s", name, ratio, n, p)
			}
			for _, other := range ai.AspectRatios {
				if other != ratio && strings.Contains(p, other.String()) {
					t.Fatalf("%s prompt for %q also mentions %q", name, ratio, other)
				}
			}
		}
	})
}

func TestComposeIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ratio := rapid.SampledFrom(ai.AspectRatios).Draw(t, "ratio")
		user := userText().Draw(t, "prompt")

		if ComposeReferenceEdit(user, ratio) != ComposeReferenceEdit(user, ratio) {
			t.Fatal("composition is not deterministic")
		}
	})
}

func TestDirectivesContainNoRatio(t *testing.T) {
	for _, directive := range []string{thumbnailStyle, identityDirective, describeInstruction} {
		for _, r := range ai.AspectRatios {
			assert.NotContains(t, directive, r.String())
		}
	}
}
