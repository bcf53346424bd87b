package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/bot"
)

var askRetrieve bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question about the converter catalog",
	Long: `Ask one question and print the answer.

Examples:
  loftybot ask "what is the price of converter 40025?"
  loftybot ask "which converters support 3 x haloled?"
  loftybot ask "show all dali dimmable converters"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askRetrieve, "retrieve", false, "ground fallback answers with vector-retrieved catalog context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if askRetrieve {
		emb, vc, err := getVector(ctx)
		if err != nil {
			return err
		}
		engine = bot.NewEngine(bot.Options{
			Resolver:        resolver,
			Generator:       newGenerator(),
			Retriever:       bot.NewVectorRetriever(emb, vc, collector),
			Metrics:         collector,
			Logger:          logger,
			FallbackTimeout: cfg.FallbackTimeout,
			HistoryWindow:   cfg.HistoryWindow,
		})
	}

	text, err := engine.Answer(ctx, args[0], nil)
	if err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	fmt.Println(text)
	return nil
}
