//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"osintgraph-client/application/services"
	"osintgraph-client/infrastructure/config"
)

// SuperSet is the provider set for the whole client engine.
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideRemoteStore,
	ProvideNotifier,
	ProvideCollector,
	ProvideEditor,
)

// InitializeEditor builds a fully wired editor from configuration.
func InitializeEditor(cfg *config.Config) (*services.Editor, error) {
	wire.Build(SuperSet)
	return nil, nil
}
