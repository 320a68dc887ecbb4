package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/mchlmayer/thumbpro"
)

func TestNewLeavesRetriesToScheduler(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded","param":null}}`))
	}))
	defer server.Close()

	c := New("test-key", option.WithBaseURL(server.URL+"/v1/"))

	_, err := c.SynthesizeImage(context.Background(), "gpt-image-1", "a cat astronaut", ai.AspectLandscape)
	require.Error(t, err)

	assert.Equal(t, ai.KindQuotaExceeded, ai.KindOf(err))
	assert.Equal(t, int32(1), hits.Load(), "one attempt makes exactly one HTTP call")
}
