package vector

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// Document is one indexed converter, keyed by article number.
type Document struct {
	Artnr     string    `json:"artnr"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
}

// Hit is one nearest-neighbour search result.
type Hit struct {
	Artnr   string  `json:"artnr"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// UpsertDocument inserts or replaces one converter document.
func (c *Client) UpsertDocument(ctx context.Context, doc Document) error {
	sql := `
		UPSERT type::record("converter_doc", $id) SET
			artnr = $artnr,
			content = $content,
			embedding = $embedding,
			indexed_at = time::now()
	`
	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":        doc.Artnr,
		"artnr":     doc.Artnr,
		"content":   doc.Content,
		"embedding": doc.Embedding,
	})
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", doc.Artnr, err)
	}
	return nil
}

// UpsertDocuments indexes a batch of documents one by one. The first
// failure stops the batch and reports how far it got.
func (c *Client) UpsertDocuments(ctx context.Context, docs []Document) error {
	for i, doc := range docs {
		if err := c.UpsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("batch stopped at %d/%d: %w", i, len(docs), err)
		}
	}
	return nil
}

// Search returns the documents nearest to the question embedding, best
// first. The KNN operator uses the HNSW index with ef=40.
func (c *Client) Search(ctx context.Context, embedding []float32, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 5
	}
	sql := fmt.Sprintf(`
		SELECT artnr, content,
			vector::similarity::cosine(embedding, $emb) AS score
		FROM converter_doc
		WHERE embedding <|%d,40|> $emb
		ORDER BY score DESC
	`, limit)

	results, err := surrealdb.Query[[]Hit](ctx, c.db, sql, map[string]any{"emb": embedding})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []Hit{}, nil
	}
	return (*results)[0].Result, nil
}

// Count returns the number of indexed documents.
func (c *Client) Count(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		C int `json:"c"`
	}](ctx, c.db, `SELECT count() AS c FROM converter_doc GROUP ALL`, nil)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].C, nil
}
