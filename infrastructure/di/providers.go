// Package di wires the engine together with google/wire.
package di

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"osintgraph-client/application/ports"
	"osintgraph-client/application/services"
	"osintgraph-client/infrastructure/config"
	"osintgraph-client/infrastructure/remote"
	"osintgraph-client/pkg/notifications"
	"osintgraph-client/pkg/observability"
)

// ProvideLogger creates the logger for the configured environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideRemoteStore creates the HTTP remote store client, wrapped with
// OpenTelemetry spans when tracing is enabled. The host registers the global
// tracer provider via observability.InitTracing before building the editor.
func ProvideRemoteStore(cfg *config.Config, logger *zap.Logger) ports.RemoteStore {
	store := remote.NewClient(cfg.BaseURL, logger)
	if cfg.TracingEnabled {
		return remote.TraceStore(store, otel.Tracer("osintgraph-client"))
	}
	return store
}

// ProvideNotifier creates the default notification sink. A UI layer
// replaces this with its toast channel.
func ProvideNotifier(logger *zap.Logger) notifications.Notifier {
	return notifications.NewLogNotifier(logger)
}

// ProvideCollector creates the metrics collector.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideEditor assembles the editor from its collaborators.
func ProvideEditor(
	cfg *config.Config,
	store ports.RemoteStore,
	notifier notifications.Notifier,
	logger *zap.Logger,
	metrics *observability.Collector,
) *services.Editor {
	return services.NewEditor(store, notifier, logger, metrics, cfg.QuietPeriod, cfg.HistoryLimit)
}
