package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
)

var recommendJSON bool

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the adaptive confidence thresholds derived from feedback",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "emit recommendations as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	summary := eng.LearningSummary()
	rec := summary.Recommendations

	if recommendJSON {
		return printJSON(summary)
	}

	ui.Section("Threshold Recommendations")
	ui.KeyValue("Auto-confirm threshold", fmt.Sprintf("%.2f", rec.AutoConfirmThreshold))
	ui.KeyValue("Review threshold", fmt.Sprintf("%.2f", rec.ReviewThreshold))
	if rec.Message != "" {
		ui.Warning("%s", rec.Message)
	}

	ui.Section("Learning Summary")
	ui.KeyValue("Decisions", fmt.Sprintf("%d (%d approved, %d rejected)",
		rec.TotalDecisions, rec.Approved, rec.Rejected))
	if rec.TotalDecisions > 0 {
		ui.KeyValue("Approval rate", fmt.Sprintf("%.1f%%", rec.ApprovalRate*100))
	}
	ui.KeyValue("Patterns learned", fmt.Sprintf("%d (%d high confidence)",
		summary.PatternsLearned, summary.HighConfidencePatterns))
	if len(summary.SourcesSeen) > 0 {
		ui.KeyValue("Sources seen", fmt.Sprintf("%v", summary.SourcesSeen))
	}
	return nil
}
