// Package embedding generates text embeddings for catalog records and
// queries, with a local Ollama backend and a Voyage AI API backend.
package embedding

import (
	"context"
	"fmt"

	"github.com/acolumban/loftybot/internal/config"
)

// Embedder is the embedding provider contract.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model name.
	Model() string

	// Dimension returns the embedding vector dimension. Must match the
	// HNSW index dimension in the vector store schema.
	Dimension() int
}

// New creates an embedder from configuration. A Voyage API key selects
// the Voyage backend, otherwise the local Ollama server is used.
func New(cfg config.Config) (Embedder, error) {
	if cfg.VoyageAPIKey != "" {
		return NewVoyageClient(cfg.VoyageAPIKey, "", 0)
	}
	return NewOllamaClient(cfg.EmbeddingModel, 0)
}

func checkDimensions(vectors [][]float32, want int) error {
	for i, v := range vectors {
		if len(v) != want {
			return fmt.Errorf("embedding %d dimension mismatch: got %d, want %d", i, len(v), want)
		}
	}
	return nil
}
