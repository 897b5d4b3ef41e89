package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ai-trader/internal/di"
	"ai-trader/internal/logger"
	"ai-trader/internal/store"
	"ai-trader/internal/trace"
	signalhttp "ai-trader/internal/transport/http"
)

// initializeSystem loads .env and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(signalhttp.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func shutdownSystem(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush tracer: %v\n", err)
	}
}

// loadApp reads the config and wires the application
func loadApp(ctx context.Context) (*di.App, error) {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", configPath)
		return nil, err
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build application", err)
		return nil, err
	}

	logger.Info(ctx, "Application ready",
		"llm_provider", cfg.LLM.Provider,
		"llm_configured", cfg.APIKey() != "",
		"market_data", cfg.MarketData.Source,
		"news_scraping", cfg.News.Enabled,
	)
	return app, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSON decodes a file, or stdin when path is "-".
func readJSON(path string, v any) error {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
