package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
)

var (
	statsSource string
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-source review statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsSource, "source", "", "limit to one retailer source")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	stats := eng.SourceStats(statsSource)

	if statsJSON {
		return printJSON(stats)
	}

	if len(stats) == 0 {
		ui.Message("no decisions recorded yet")
		return nil
	}

	sources := make([]string, 0, len(stats))
	for source := range stats {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	rows := make([][]string, len(sources))
	for i, source := range sources {
		s := stats[source]
		rows[i] = []string{
			source,
			fmt.Sprintf("%d", s.Total),
			fmt.Sprintf("%d", s.Approved),
			fmt.Sprintf("%d", s.Rejected),
			fmt.Sprintf("%.1f%%", s.ApprovalRate*100),
			fmt.Sprintf("%.2f", s.AvgConfidenceApproved),
			fmt.Sprintf("%.2f", s.AvgConfidenceRejected),
		}
	}
	ui.Table(
		[]string{"Source", "Total", "Approved", "Rejected", "Approval", "Avg Conf (A)", "Avg Conf (R)"},
		rows,
	)
	return nil
}
