package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
	"github.com/harmonizeiq/matching-engine/internal/learning"
)

var (
	decideMappingID  string
	decideRaw        string
	decideCanonical  string
	decideConfidence float64
	decideSource     string
)

var decideCmd = &cobra.Command{
	Use:   "decide <approved|rejected>",
	Short: "Record a human review decision on a proposed match",
	Long: `Decide appends an approve/reject verdict to the decision log. Approvals
feed the pattern miner: recurring abbreviation patterns are promoted into
the learned dictionary once they prove out.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecide,
}

func init() {
	decideCmd.Flags().StringVar(&decideMappingID, "mapping", "", "mapping id (generated when empty)")
	decideCmd.Flags().StringVarP(&decideRaw, "raw", "r", "", "raw retailer description (required)")
	decideCmd.Flags().StringVarP(&decideCanonical, "canonical", "p", "", "canonical product name (required)")
	decideCmd.Flags().Float64Var(&decideConfidence, "confidence", 0, "original match confidence")
	decideCmd.Flags().StringVar(&decideSource, "source", "", "retailer source id (required)")
	decideCmd.MarkFlagRequired("raw")
	decideCmd.MarkFlagRequired("canonical")
	decideCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) error {
	verdict := args[0]
	if verdict != learning.DecisionApproved && verdict != learning.DecisionRejected {
		return fmt.Errorf("verdict must be %q or %q", learning.DecisionApproved, learning.DecisionRejected)
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	decision, err := eng.RecordDecision(decideMappingID, decideRaw, decideCanonical, verdict,
		decideConfidence, decideSource, nil)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}

	ui.Success("recorded %s decision %s", decision.Decision, decision.MappingID)
	if verdict == learning.DecisionApproved {
		patterns := eng.Patterns(1)
		if len(patterns) > 0 && ui.Verbose() {
			ui.Message("known patterns: %d", len(patterns))
		}
	}
	return nil
}
