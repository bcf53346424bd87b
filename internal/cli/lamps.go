package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/normalize"
	"github.com/acolumban/loftybot/internal/query"
)

var lampsQuantity int

var lampsCmd = &cobra.Command{
	Use:   "lamps <artnr | lamp name>",
	Short: "Show lamp compatibility for a converter, or converters for a lamp",
	Long: `With an article number, list the lamps a converter can drive and
their quantity ranges. With a lamp name, list converters that can drive
it, optionally requiring a quantity.

Examples:
  loftybot lamps 40025
  loftybot lamps haloled
  loftybot lamps haloled -n 3`,
	Args: cobra.ExactArgs(1),
	RunE: runLamps,
}

func init() {
	lampsCmd.Flags().IntVarP(&lampsQuantity, "quantity", "n", 0, "required lamp quantity")
}

func runLamps(cmd *cobra.Command, args []string) error {
	arg := args[0]

	var e query.Entities
	intent := query.IntentLampToConverter
	if artnr := normalize.ArticleNumber(arg); looksLikeArtnr(arg) {
		e.Artnrs = []string{artnr}
		intent = query.IntentLampCompatibility
	} else {
		e.LampPhrase = arg
		e.Quantity = lampsQuantity
	}

	res := resolver.Resolve("lamps "+arg, e, intent)
	fmt.Println(renderOrNotFound(res))
	return nil
}

func looksLikeArtnr(s string) bool {
	if len(s) < 4 || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
