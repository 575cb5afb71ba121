package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
	"github.com/harmonizeiq/matching-engine/internal/config"
	"github.com/harmonizeiq/matching-engine/internal/observability"
	"github.com/harmonizeiq/matching-engine/pkg/engine"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "matcher",
	Short: "FMCG product matching engine - normalize descriptions, score matches, learn from feedback",
	Long: `Matcher normalizes messy retailer product descriptions into canonical form,
scores raw-to-master match candidates, and learns new abbreviation patterns
from human review decisions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		ui.Init(noColor, verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newEngine loads configuration and constructs the shared engine instance.
func newEngine() (*engine.Engine, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logCfg := observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "matcher",
	}
	if verbose {
		logCfg.Level = "debug"
		logCfg.Format = "console"
	}

	return engine.New(cfg, observability.NewLogger(logCfg))
}
