package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
	"github.com/harmonizeiq/matching-engine/internal/scoring"
	"github.com/harmonizeiq/matching-engine/pkg/engine"
)

var (
	matchMaster   string
	matchRaw      string
	matchSemantic float64
	matchEmbed    bool
	matchRawOnly  bool
	matchJSON     bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a raw description against a master catalog record",
	Long: `Match combines a semantic similarity score with brand, size and category
agreement into one confidence value and a recommended disposition. Supply
--semantic directly, or --embed to resolve it through the embedding provider.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchMaster, "master", "m", "", "master catalog description (required)")
	matchCmd.Flags().StringVarP(&matchRaw, "raw", "r", "", "raw retailer description (required)")
	matchCmd.Flags().Float64VarP(&matchSemantic, "semantic", "s", 0, "precomputed semantic similarity in [0,1]")
	matchCmd.Flags().BoolVar(&matchEmbed, "embed", false, "resolve the semantic score via the embedding provider")
	matchCmd.Flags().BoolVar(&matchRawOnly, "no-normalize", false, "score the raw text as-is, without normalization")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "emit the score as JSON")
	matchCmd.MarkFlagRequired("master")
	matchCmd.MarkFlagRequired("raw")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	semantic := matchSemantic
	if matchEmbed {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		semantic, err = eng.SemanticScore(ctx, matchMaster, matchRaw)
		if err != nil {
			return fmt.Errorf("resolve semantic score: %w", err)
		}
	}

	score := eng.Match(engine.MatchRequest{
		MasterText:    matchMaster,
		RawText:       matchRaw,
		SemanticScore: semantic,
		Normalize:     !matchRawOnly,
	})

	if matchJSON {
		return printJSON(score)
	}

	ui.Section("Match Score")
	ui.KeyValue("Semantic", fmt.Sprintf("%.4f", score.SemanticScore))
	ui.KeyValue("Attribute", fmt.Sprintf("%.4f", score.AttributeScore))
	ui.KeyValue("Normalization bonus", fmt.Sprintf("%.4f", score.NormalizationBonus))
	ui.KeyValue("Final confidence", fmt.Sprintf("%.4f", score.FinalConfidence))

	switch score.RecommendedStatus {
	case scoring.StatusAutoConfirm:
		ui.Success("recommended: %s", score.RecommendedStatus)
	case scoring.StatusPendingReview:
		ui.Warning("recommended: %s", score.RecommendedStatus)
	default:
		ui.Error("recommended: %s", score.RecommendedStatus)
	}
	return nil
}
