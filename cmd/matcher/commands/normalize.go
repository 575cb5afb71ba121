package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harmonizeiq/matching-engine/cmd/matcher/ui"
	"github.com/harmonizeiq/matching-engine/internal/normalize"
)

var (
	normalizeFile string
	normalizeJSON bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [description]",
	Short: "Normalize a raw product description into canonical form",
	Long: `Normalize cleans a raw retailer description, extracts the package size,
detects the brand and expands abbreviated tokens. Pass a single description
as an argument, or --file to normalize one description per line.`,
	Args: cobra.ArbitraryArgs,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeFile, "file", "f", "", "file with one description per line")
	normalizeCmd.Flags().BoolVar(&normalizeJSON, "json", false, "emit results as JSON")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if normalizeFile == "" && len(args) == 0 {
		return fmt.Errorf("provide a description argument or --file")
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	if normalizeFile != "" {
		return runNormalizeBatch(eng.NormalizeBatch, normalizeFile)
	}

	res := eng.Normalize(strings.Join(args, " "))
	if normalizeJSON {
		return printJSON(res)
	}

	printNormalization(res)
	return nil
}

func runNormalizeBatch(batch func([]string) []normalize.Result, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	var descriptions []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			descriptions = append(descriptions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	if len(descriptions) == 0 {
		return fmt.Errorf("no descriptions in %s", path)
	}

	bar := ui.NewProgressBar(int64(len(descriptions)), "normalizing")
	results := make([]normalize.Result, 0, len(descriptions))
	for _, desc := range descriptions {
		results = append(results, batch([]string{desc})...)
		bar.Add(1)
	}
	bar.Finish()

	if normalizeJSON {
		return printJSON(results)
	}

	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{res.Original, res.Normalized, res.Brand, normalize.ExpansionSummary(res)}
	}
	ui.Table([]string{"Original", "Normalized", "Brand", "Expansions"}, rows)
	return nil
}

func printNormalization(res normalize.Result) {
	ui.Section("Normalization")
	ui.KeyValue("Original", res.Original)
	ui.KeyValue("Normalized", res.Normalized)
	if res.Brand != "" {
		ui.KeyValue("Brand", fmt.Sprintf("%s (%.2f)", res.Brand, res.BrandConfidence))
	}
	if res.CategoryHint != "" {
		ui.KeyValue("Category", res.CategoryHint)
	}
	if res.Size != nil {
		ui.KeyValue("Size", fmt.Sprintf("%s (%.2f canonical)", res.Size.Suffix(), res.Size.Canonical))
	}
	ui.KeyValue("Expansions", normalize.ExpansionSummary(res))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
