package main

import (
	"context"
	"fmt"
	"os"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
	"github.com/denshoproject/namesdb-editor/internal/domain/services"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
	qdrant "github.com/denshoproject/namesdb-editor/internal/infrastructure/docstore/qdrant"
	embedder "github.com/denshoproject/namesdb-editor/internal/infrastructure/embedder/openai"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/noidminter"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/relationaldb/sqlite"
)

// withDB loads config, opens the registry database and ensures its
// schema, then calls the provided function. Cleanup is automatic.
func withDB(fn func(cfg *config.Config, db ports.RegistryDB) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := sqlite.NewRepository(config.DatabaseConfig{Path: cfg.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return fn(cfg, db)
}

// withLoad builds the import pipeline. The minter is only contacted for
// persons without identifiers, so missing minter credentials fail at
// mint time rather than up front.
func withLoad(fn func(h *handlers.LoadHandler) error) error {
	return withDB(func(cfg *config.Config, db ports.RegistryDB) error {
		var minter ports.Minter
		client, err := noidminter.NewClient(cfg.NoidMinter)
		if err != nil {
			minter = &unconfiguredMinter{err: err}
		} else {
			minter = client
		}
		service := services.NewLoadService(db, minter)
		return fn(handlers.NewLoadHandler(service))
	})
}

// withDump builds the export pipeline.
func withDump(fn func(h *handlers.DumpHandler) error) error {
	return withDB(func(cfg *config.Config, db ports.RegistryDB) error {
		return fn(handlers.NewDumpHandler(services.NewDumpService(db)))
	})
}

// withPublish builds the search-index pipeline.
func withPublish(fn func(h *handlers.PublishHandler) error) error {
	return withDB(func(cfg *config.Config, db ports.RegistryDB) error {
		ds, err := qdrant.NewDocstore(cfg.Docstore)
		if err != nil {
			return fmt.Errorf("creating qdrant docstore: %w", err)
		}
		defer ds.Close()

		emb, err := embedder.NewEmbedder(cfg.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		service := services.NewPublishService(db, ds, emb)
		return fn(handlers.NewPublishHandler(service, ds))
	})
}

// withReconcile builds the name-matching pipeline. The embedder is only
// required for the vector method.
func withReconcile(method string, fn func(h *handlers.ReconcileHandler) error) error {
	return withDB(func(cfg *config.Config, db ports.RegistryDB) error {
		ds, err := qdrant.NewDocstore(cfg.Docstore)
		if err != nil {
			return fmt.Errorf("creating qdrant docstore: %w", err)
		}
		defer ds.Close()

		var emb ports.Embedder
		if method == string(services.MethodVector) {
			e, err := embedder.NewEmbedder(cfg.Embedder)
			if err != nil {
				return fmt.Errorf("creating embedder: %w", err)
			}
			emb = e
		}

		service := services.NewReconcileService(db, ds, emb)
		return fn(handlers.NewReconcileHandler(service))
	})
}

// unconfiguredMinter defers a minter configuration error until an
// identifier is actually requested.
type unconfiguredMinter struct {
	err error
}

func (m *unconfiguredMinter) Mint(ctx context.Context, num int) ([]string, error) {
	return nil, fmt.Errorf("noidminter not configured: %w", m.err)
}
