package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/bot"
)

var indexWipe bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the catalog into the vector store",
	Long: `Embed every catalog record and upsert it into the SurrealDB vector
store, so fallback answers can be grounded with retrieved catalog
context (see 'ask --retrieve').

Examples:
  loftybot index
  loftybot index --wipe`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexWipe, "wipe", false, "delete previously indexed documents first")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	emb, vc, err := getVector(ctx)
	if err != nil {
		return err
	}

	if indexWipe {
		if err := vc.Wipe(ctx); err != nil {
			return fmt.Errorf("wipe index: %w", err)
		}
	}

	snap := store.Snapshot()
	if err := bot.NewIndexer(emb, vc, logger).IndexCatalog(ctx, snap); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}

	count, err := vc.Count(ctx)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	fmt.Printf("Indexed %d converters (%d documents in store).\n", snap.Len(), count)
	return nil
}
