package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req["model"])
		assert.Equal(t, "hello", req["prompt"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{3, 4},
		})
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "")

	res, err := provider.Generate("hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	require.Len(t, res.Embedding.Values, 2)

	// 3-4-5 triangle scaled to unit length.
	assert.InDelta(t, 0.6, res.Embedding.Values[0], 1e-6)
	assert.InDelta(t, 0.8, res.Embedding.Values[1], 1e-6)
}

func TestOllamaGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "missing-model")

	_, err := provider.Generate("hello", "RETRIEVAL_DOCUMENT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestNormalizeVectorZero(t *testing.T) {
	vec := []float32{0, 0, 0}
	assert.Equal(t, vec, normalizeVector(vec))
}
