package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/acolumban/loftybot/internal/embedding"
	"github.com/acolumban/loftybot/internal/metrics"
	"github.com/acolumban/loftybot/internal/vector"
)

// VectorRetriever implements Retriever by embedding the question and
// running a nearest-neighbour search against the vector store.
type VectorRetriever struct {
	embedder embedding.Embedder
	client   *vector.Client
	metrics  *metrics.Collector
}

var _ Retriever = (*VectorRetriever)(nil)

// NewVectorRetriever builds a retriever over an embedder and store.
func NewVectorRetriever(embedder embedding.Embedder, client *vector.Client, collector *metrics.Collector) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, client: client, metrics: collector}
}

// Search embeds the question and returns the closest catalog documents.
func (r *VectorRetriever) Search(ctx context.Context, question string, limit int) ([]vector.Hit, error) {
	start := time.Now()
	emb, err := r.embedder.Embed(ctx, question)
	if r.metrics != nil {
		r.metrics.RecordTiming(metrics.OpEmbedding, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	start = time.Now()
	hits, err := r.client.Search(ctx, emb, limit)
	if r.metrics != nil {
		r.metrics.RecordTiming(metrics.OpVectorSearch, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hits, nil
}
