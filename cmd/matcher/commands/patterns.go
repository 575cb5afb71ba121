package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
)

var (
	patternsMinOccurrences int
	patternsJSON           bool
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List abbreviation patterns mined from approved matches",
	RunE:  runPatterns,
}

func init() {
	patternsCmd.Flags().IntVarP(&patternsMinOccurrences, "min-occurrences", "n", 1, "minimum sightings to list")
	patternsCmd.Flags().BoolVar(&patternsJSON, "json", false, "emit patterns as JSON")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	patterns := eng.Patterns(patternsMinOccurrences)

	if patternsJSON {
		return printJSON(patterns)
	}

	if len(patterns) == 0 {
		ui.Message("no patterns with at least %d occurrences", patternsMinOccurrences)
		return nil
	}

	rows := make([][]string, len(patterns))
	for i, p := range patterns {
		rows[i] = []string{
			p.Abbreviation,
			p.Expansion,
			fmt.Sprintf("%d", p.Occurrences),
			fmt.Sprintf("%.2f", p.Confidence),
			strings.Join(p.Sources, ","),
		}
	}
	ui.Table([]string{"Abbreviation", "Expansion", "Occurrences", "Confidence", "Sources"}, rows)
	return nil
}
