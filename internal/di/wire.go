//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"ai-trader/internal/store"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *store.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
