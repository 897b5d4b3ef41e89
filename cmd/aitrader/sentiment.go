package main

import (
	"github.com/spf13/cobra"

	"ai-trader/internal/types"
)

var sentimentAggregate bool

var sentimentCmd = &cobra.Command{
	Use:   "sentiment FILE",
	Short: "Classify news articles",
	Long: `Classify a JSON array of {headline, summary} articles (- for stdin).

Prints one {headline, sentiment, score} per article, or the overall
{label, score} with --aggregate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx)
		if err != nil {
			return err
		}

		var articles []types.Article
		if err := readJSON(args[0], &articles); err != nil {
			return err
		}

		if sentimentAggregate {
			agg, err := app.Service.AggregateSentiment(ctx, articles)
			if err != nil {
				return err
			}
			return printJSON(agg)
		}

		results, err := app.Service.ClassifySentiment(ctx, articles)
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
	sentimentCmd.Flags().BoolVar(&sentimentAggregate, "aggregate", false, "print the overall label and score")
}
