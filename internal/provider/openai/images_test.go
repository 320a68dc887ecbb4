package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mchlmayer/thumbpro"
)

type mockImages struct {
	resp   *openai.ImagesResponse
	err    error
	params openai.ImageGenerateParams
}

func (m *mockImages) Generate(_ context.Context, body openai.ImageGenerateParams, _ ...option.RequestOption) (*openai.ImagesResponse, error) {
	m.params = body
	return m.resp, m.err
}

func apiError(status int, code string, header http.Header) *openai.Error {
	if header == nil {
		header = http.Header{}
	}
	return &openai.Error{
		StatusCode: status,
		Code:       code,
		Request:    httptest.NewRequest(http.MethodPost, "https://api.openai.com/v1/images/generations", nil),
		Response:   &http.Response{StatusCode: status, Header: header},
	}
}

func TestSynthesizeImage(t *testing.T) {
	payload := []byte("png-bytes")
	m := &mockImages{resp: &openai.ImagesResponse{Data: []openai.Image{
		{B64JSON: ""},
		{B64JSON: base64.StdEncoding.EncodeToString(payload)},
	}}}
	c := newWithImages(m)

	img, err := c.SynthesizeImage(context.Background(), "gpt-image-1", "a cat astronaut", ai.AspectLandscape)
	require.NoError(t, err)

	assert.Equal(t, payload, img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "gpt-image-1", img.Model)
	assert.Equal(t, "a cat astronaut", m.params.Prompt)
	assert.Equal(t, openai.ImageGenerateParamsSize("1536x1024"), m.params.Size)
	assert.Empty(t, m.params.ResponseFormat)
}

func TestSynthesizeImageDallERequestsBase64(t *testing.T) {
	m := &mockImages{resp: &openai.ImagesResponse{Data: []openai.Image{{B64JSON: "YWJj"}}}}
	c := newWithImages(m)

	_, err := c.SynthesizeImage(context.Background(), "dall-e-3", "p", ai.AspectPortrait)
	require.NoError(t, err)
	assert.Equal(t, openai.ImageGenerateParamsResponseFormatB64JSON, m.params.ResponseFormat)
	assert.Equal(t, openai.ImageGenerateParamsSize("1024x1792"), m.params.Size)
}

func TestSizeFor(t *testing.T) {
	assert.Equal(t, "1024x1024", sizeFor("gpt-image-1", ai.AspectSquare))
	assert.Equal(t, "1536x1024", sizeFor("gpt-image-1", ai.AspectClassic))
	assert.Equal(t, "1024x1536", sizeFor("gpt-image-1", ai.AspectTall))
	assert.Equal(t, "1792x1024", sizeFor("dall-e-3", ai.AspectLandscape))
}

func TestImageFromResponse(t *testing.T) {
	t.Run("no data is an empty response", func(t *testing.T) {
		_, err := imageFromResponse(&openai.ImagesResponse{}, "gpt-image-1")
		assert.True(t, ai.IsKind(err, ai.KindMalformedResponse))
		assert.Contains(t, err.Error(), "empty response")
	})

	t.Run("bad base64 is malformed", func(t *testing.T) {
		_, err := imageFromResponse(&openai.ImagesResponse{Data: []openai.Image{{B64JSON: "!!!"}}}, "gpt-image-1")
		assert.True(t, ai.IsKind(err, ai.KindMalformedResponse))
	})
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ai.ErrorKind
	}{
		{"rate limited", apiError(429, "rate_limit_exceeded", nil), ai.KindQuotaExceeded},
		{"content policy", apiError(400, "content_policy_violation", nil), ai.KindPolicyBlocked},
		{"moderation", apiError(400, "moderation_blocked", nil), ai.KindPolicyBlocked},
		{"model not found", apiError(404, "model_not_found", nil), ai.KindModelUnavailable},
		{"billing exhausted", apiError(429, "insufficient_quota", nil), ai.KindModelUnavailable},
		{"org not verified", apiError(403, "", nil), ai.KindModelUnavailable},
		{"bad key", apiError(401, "invalid_api_key", nil), ai.KindConfiguration},
		{"server error", apiError(500, "", nil), ai.KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newWithImages(&mockImages{err: tt.err})
			_, err := c.SynthesizeImage(context.Background(), "gpt-image-1", "p", ai.AspectSquare)
			assert.Equal(t, tt.kind, ai.KindOf(err))
		})
	}

	t.Run("billing exhaustion is not retried", func(t *testing.T) {
		err := wrapError(apiError(429, "insufficient_quota", nil), "gpt-image-1")
		assert.False(t, ai.IsRetryable(err))
	})

	t.Run("honors Retry-After", func(t *testing.T) {
		header := http.Header{}
		header.Set("Retry-After", "7")

		err := wrapError(apiError(429, "", header), "gpt-image-1")
		assert.Equal(t, 7*time.Second, ai.RetryAfterOf(err))
		assert.True(t, ai.IsRetryable(err))
	})

	t.Run("non-API errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset by peer")
		assert.Equal(t, plain, wrapError(plain, "gpt-image-1"))
		assert.Nil(t, wrapError(nil, "gpt-image-1"))
	})
}
