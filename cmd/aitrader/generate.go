package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate SYMBOL[,SYMBOL...] ...",
	Short: "Print signals for up to 20 symbols",
	Long: `Generate signals for several symbols concurrently.

Symbols may be given as separate arguments or comma separated. A symbol
that fails yields a HOLD signal with HIGH risk instead of failing the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx)
		if err != nil {
			return err
		}

		var symbols []string
		for _, arg := range args {
			symbols = append(symbols, strings.Split(arg, ",")...)
		}

		signals, err := app.Service.Generate(ctx, symbols)
		if err != nil {
			return err
		}
		return printJSON(signals)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
