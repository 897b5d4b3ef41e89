package main

import (
	"fmt"

	"github.com/spf13/cobra"

	signalhttp "ai-trader/internal/transport/http"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aitrader version %s\n", signalhttp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
