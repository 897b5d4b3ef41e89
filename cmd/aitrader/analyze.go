package main

import (
	"strings"

	"github.com/spf13/cobra"

	"ai-trader/internal/types"
)

var (
	analyzeCandlesPath  string
	analyzeArticlesPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Print the signal for one symbol",
	Long: `Analyse one symbol and print the signal as JSON.

Candles are fetched from the configured market-data source unless a JSON
file of {time, open, high, low, close, volume} objects is given.

Example:
  aitrader analyze RELIANCE --candles candles.json --articles news.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx)
		if err != nil {
			return err
		}

		var candles []types.Candle
		if analyzeCandlesPath != "" {
			if err := readJSON(analyzeCandlesPath, &candles); err != nil {
				return err
			}
		}
		var articles []types.Article
		if analyzeArticlesPath != "" {
			if err := readJSON(analyzeArticlesPath, &articles); err != nil {
				return err
			}
		}

		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		sig, err := app.Service.Analyze(ctx, symbol, candles, articles...)
		if err != nil {
			return err
		}
		return printJSON(sig)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeCandlesPath, "candles", "", "JSON file of candles (- for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeArticlesPath, "articles", "", "JSON file of {headline, summary} articles")
}
