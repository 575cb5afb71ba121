package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Embed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/embed/batch", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"crest whitening", "colgate total"}, req.Texts)
		assert.Equal(t, "all-MiniLM-L6-v2", req.Model)

		json.NewEncoder(w).Encode(batchResponse{
			Count:      2,
			Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0}},
			Dimension:  3,
		})
	})

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	vecs, err := client.Embed(context.Background(), []string{"crest whitening", "colgate total"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1, 0}, vecs[1])
}

func TestClient_Embed_NoTexts(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)

	vecs, err := client.Embed(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestClient_Embed_ProviderError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	})

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Embed_CountMismatch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchResponse{
			Count:      1,
			Embeddings: [][]float32{{1, 0, 0}},
			Dimension:  3,
		})
	})

	client, err := NewClient(Config{BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestClient_Embed_DimensionMismatch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchResponse{
			Count:      1,
			Embeddings: [][]float32{{1, 0}},
			Dimension:  2,
		})
	})

	client, err := NewClient(Config{BaseURL: srv.URL, Dimension: 3})
	require.NoError(t, err)

	_, err = client.Embed(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, 384, client.Dimension())
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)

	// cos([1,0],[1,1]) = 1/√2 ≈ 0.7071
	assert.InDelta(t, 0.7071, Cosine([]float32{1, 0}, []float32{1, 1}), 0.001)

	// Opposite vectors clamp to 0 instead of going negative.
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{-1, 0}))

	// Guards: mismatched lengths and zero vectors.
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
}
