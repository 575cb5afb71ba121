package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
)

var expandJSON bool

var expandCmd = &cobra.Command{
	Use:   "expand <text>",
	Short: "Expand abbreviated tokens in a description",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExpand,
}

func init() {
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "emit results as JSON")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	expanded, results := eng.ExpandText(strings.Join(args, " "))

	if expandJSON {
		return printJSON(map[string]interface{}{
			"expanded_text": expanded,
			"expansions":    results,
		})
	}

	ui.Section("Expansion")
	ui.KeyValue("Expanded", expanded)
	if len(results) == 0 {
		ui.Message("  no tokens changed")
		return nil
	}

	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{res.Original, res.Expanded, fmt.Sprintf("%.2f", res.Confidence), res.Method}
	}
	ui.Table([]string{"Token", "Expanded", "Confidence", "Method"}, rows)
	return nil
}
