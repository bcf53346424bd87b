package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as YAML",
	Long: `Write the loaded catalog as YAML, for inspection or diffing
against a new ingestion run.

Examples:
  loftybot export
  loftybot export -o catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(store.Snapshot().All())
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if exportOutput == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	fmt.Printf("Exported %d converters to %s.\n", store.Snapshot().Len(), exportOutput)
	return nil
}
