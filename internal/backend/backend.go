// Package backend opens the configured fact store and builds the fact
// service shared by the server and factctl.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yorkfacts/internal/config"
	"yorkfacts/internal/db"
	"yorkfacts/internal/events"
	"yorkfacts/internal/facts"
	"yorkfacts/internal/similarity"
	"yorkfacts/internal/store"
)

// Backend holds the open store, the event publisher and the service
// built on them.
type Backend struct {
	Store     store.Store
	Publisher events.Publisher
	Gate      *similarity.Gate
	Service   *facts.Service
}

// OpenStore opens the store selected by cfg.StoreDriver. PostgreSQL
// stores are migrated before use and seeded with sample facts in
// development.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverCSV:
		st, err := store.OpenCSV(cfg.CSVPath)
		if err != nil {
			return nil, err
		}
		logger.Info("using csv store", "path", st.Path())
		return st, nil

	case config.DriverPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			database.Close()
			return nil, err
		}
		if cfg.IsDev() {
			if err := database.SeedDevFacts(ctx); err != nil {
				database.Close()
				return nil, err
			}
			logger.Info("seeded development facts")
		}
		logger.Info("using postgres store")
		return database, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise.
func NewPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled() {
		return events.Nop{}
	}
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

// Open loads the catalog, opens the store and builds the fact service.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	catalog, err := config.LoadCatalog(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	catalog.ApplyTo(cfg)

	gate, err := similarity.NewGate(cfg.SimilarityThreshold, cfg.SimilarityMetric)
	if err != nil {
		return nil, err
	}

	st, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher := NewPublisher(cfg)
	return &Backend{
		Store:     st,
		Publisher: publisher,
		Gate:      gate,
		Service:   facts.NewService(st, gate, catalog, publisher, logger),
	}, nil
}

// Close waits for pending events, flushes the publisher and closes the
// store.
func (b *Backend) Close() error {
	b.Service.Wait()
	return errors.Join(b.Publisher.Close(), b.Store.Close())
}
