package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/query"
)

var (
	listDimming string
	listType    string
	listIP      int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog converters, optionally filtered",
	Long: `List converters from the catalog as a table.

Examples:
  loftybot list
  loftybot list --dimming dali
  loftybot list --type 24v --ip 67`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listDimming, "dimming", "", "filter by dimming protocol (dali, 1-10v, casambi, touchdim, mains)")
	listCmd.Flags().StringVar(&listType, "type", "", "filter by voltage/current type, e.g. 24v or 350ma")
	listCmd.Flags().IntVar(&listIP, "ip", 0, "filter by exact IP rating, e.g. 67")
}

// runList reuses the question pipeline so flag filters and chat filters
// go through the same resolution path.
func runList(cmd *cobra.Command, args []string) error {
	e := query.Entities{
		Dimming:     strings.ToLower(listDimming),
		VoltCurrent: strings.ToLower(listType),
	}
	if listIP > 0 {
		ip := listIP
		e.IP = &ip
	}

	res := resolver.Resolve("list all converters", e, query.IntentBulkListing)
	text := renderOrNotFound(res)
	fmt.Println(text)
	return nil
}
