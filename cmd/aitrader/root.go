package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "aitrader",
	Short: "Stock signal service combining technicals, news sentiment and LLM reasoning",
	Long: `aitrader turns recent price history and news into BUY / SELL / HOLD signals.

Each signal blends three views of a stock:
  - technical indicators computed from daily candles
  - sentiment of recent headlines
  - a holistic assessment from a reasoning model

Without API keys every LLM stage falls back to a neutral default, so the
service always answers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeSystem()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		shutdownSystem(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults only when empty)")
}
