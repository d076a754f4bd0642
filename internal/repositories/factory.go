// Package repositories selects and opens the conversion history backend.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/seadmustafa/FXAPI/internal/core/ports/repositories"
	"github.com/seadmustafa/FXAPI/internal/platform/config"
	"github.com/seadmustafa/FXAPI/internal/repositories/database/pgsql"
	"github.com/seadmustafa/FXAPI/internal/repositories/database/sqlite"
	"github.com/seadmustafa/FXAPI/internal/repositories/events"
	"github.com/seadmustafa/FXAPI/internal/repositories/memory"
	"github.com/seadmustafa/FXAPI/pkg/database"
)

// Open builds the RepositoryProvider selected by cfg.HistoryStore. When Kafka
// brokers are configured every saved conversion is also published.
// The returned cleanup releases everything Open acquired.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var (
		provider portsrepo.RepositoryProvider
		closers  []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.HistoryStore {
	case config.HistoryStoreMemory, "":
		logger.Info("history store: using in-memory backend")
		provider.HistoryRepo = memory.NewConversionHistoryStore()

	case config.HistoryStoreSQLite:
		logger.Info("history store: using sqlite", "path", cfg.SQLitePath)
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return provider, cleanup, err
		}
		closers = append(closers, func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close sqlite history store", "error", err)
			}
		})
		provider.HistoryRepo = repo

	case config.HistoryStorePostgres:
		logger.Info("history store: using postgres")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return provider, cleanup, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return provider, cleanup, err
		}
		closers = append(closers, func() { database.ClosePgxPool(pool) })
		provider = pgsql.NewRepositoryProvider(pool)

	default:
		return provider, cleanup, fmt.Errorf("unsupported history store %q", cfg.HistoryStore)
	}

	if len(cfg.KafkaBrokers) > 0 {
		logger.Info("publishing conversions to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaConversionTopic)
		publisher := events.NewPublishingStore(provider.HistoryRepo, cfg.KafkaBrokers, cfg.KafkaConversionTopic, logger)
		closers = append(closers, func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka writer", "error", err)
			}
		})
		provider.HistoryRepo = publisher
	}

	return provider, cleanup, nil
}
