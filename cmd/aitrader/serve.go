package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ai-trader/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the signal API until interrupted.

Routes:
  GET  /                     welcome
  GET  /health               status, version and uptime
  POST /analyze              signal for one symbol
  GET  /signals/generate     ?symbols=A,B (max 20)
  POST /signals/generate     {"symbols": [...]}
  POST /sentiment/analyze    per-article sentiment
  POST /sentiment/aggregate  overall sentiment
  GET  /metrics              Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := loadApp(ctx)
		if err != nil {
			return err
		}

		if err := app.Server.Start(ctx); err != nil {
			logger.ErrorWithErr(ctx, "HTTP server stopped", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
