package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/acolumban/loftybot/internal/catalog"
	"github.com/acolumban/loftybot/internal/embedding"
	"github.com/acolumban/loftybot/internal/vector"
)

// indexBatchSize keeps embedding requests within model context limits.
const indexBatchSize = 16

// Indexer embeds catalog records and writes them to the vector store.
type Indexer struct {
	embedder embedding.Embedder
	client   *vector.Client
	logger   *slog.Logger
}

// NewIndexer builds an indexer.
func NewIndexer(embedder embedding.Embedder, client *vector.Client, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{embedder: embedder, client: client, logger: logger}
}

// IndexCatalog embeds every record of the snapshot and upserts it,
// replacing previously indexed versions of the same article number.
func (ix *Indexer) IndexCatalog(ctx context.Context, snap *catalog.Catalog) error {
	records := snap.All()
	ix.logger.Info("indexing catalog", "records", len(records))

	for offset := 0; offset < len(records); offset += indexBatchSize {
		end := min(offset+indexBatchSize, len(records))
		batch := records[offset:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = RecordText(rec)
		}

		embeddings, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", offset, err)
		}

		docs := make([]vector.Document, len(batch))
		for i, rec := range batch {
			docs[i] = vector.Document{
				Artnr:     rec.Artnr(),
				Content:   texts[i],
				Embedding: embeddings[i],
			}
		}
		if err := ix.client.UpsertDocuments(ctx, docs); err != nil {
			return fmt.Errorf("upsert batch at %d: %w", offset, err)
		}
	}

	ix.logger.Info("catalog indexed", "records", len(records))
	return nil
}

// RecordText renders a record as the prose document that gets embedded.
// Only present fields appear, so sparse records stay short.
func RecordText(rec *catalog.ConverterRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.", rec.Label())
	if rec.Type != "" {
		fmt.Fprintf(&b, " Type %s.", rec.Type)
	}
	if rec.Dimmability != "" {
		fmt.Fprintf(&b, " Dimmable via %s.", rec.Dimmability)
	}
	if rec.IPRating != nil {
		fmt.Fprintf(&b, " Rated %s.", rec.IPCode())
	}
	if rec.OutputVoltage != nil {
		fmt.Fprintf(&b, " Output voltage %g-%g V.", rec.OutputVoltage.Min, rec.OutputVoltage.Max)
	}
	if rec.Location != "" {
		fmt.Fprintf(&b, " For %s use.", rec.Location)
	}
	if len(rec.Lamps) > 0 {
		names := make([]string, 0, len(rec.Lamps))
		for name := range rec.Lamps {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, " Drives lamps: %s.", strings.Join(names, ", "))
	}
	return b.String()
}
