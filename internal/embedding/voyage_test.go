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

func TestNewVoyageClientDefaults(t *testing.T) {
	client, err := NewVoyageClient("test-key", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultVoyageModel, client.Model())
	assert.Equal(t, DefaultVoyageDimension, client.Dimension())
}

func TestNewVoyageClientRequiresKey(t *testing.T) {
	_, err := NewVoyageClient("", "", 0)
	require.Error(t, err)
}

func TestVoyageEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req voyageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := voyageResponse{}
		// Answer out of order to exercise index-based reassembly.
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, struct {
				Embedding []float32 `json:"embedding"`
				Index     int       `json:"index"`
			}{Embedding: []float32{float32(i), 0, 1}, Index: i})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, err := NewVoyageClient("test-key", "voyage-3", 3)
	require.NoError(t, err)
	client.endpoint = srv.URL

	embeddings, err := client.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, float32(0), embeddings[0][0])
	assert.Equal(t, float32(1), embeddings[1][0])
}

func TestVoyageEmbedBatchEmpty(t *testing.T) {
	client, err := NewVoyageClient("test-key", "", 0)
	require.NoError(t, err)

	embeddings, err := client.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, embeddings, 0)
}

func TestVoyageDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := voyageResponse{}
		resp.Data = append(resp.Data, struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}{Embedding: []float32{1, 2}, Index: 0})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, err := NewVoyageClient("test-key", "voyage-3", 3)
	require.NoError(t, err)
	client.endpoint = srv.URL

	_, err = client.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}
