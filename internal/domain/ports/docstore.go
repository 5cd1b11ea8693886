package ports

import (
	"context"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
)

// Document is one record projected for the search index.
type Document struct {
	Model  entities.Kind
	ID     string
	Body   map[string]any
	Vector []float32
}

// IndexStatus describes one search index.
type IndexStatus struct {
	Name   string
	Exists bool
	Points uint64
}

// PersonHit is one fuzzy-search result from the person index.
type PersonHit struct {
	NRID          string
	PreferredName string
	Score         float32
}

// Docstore is the search-index collaborator. It consumes Dict()
// projections and owns index lifecycle; it knows nothing about the
// relational store.
type Docstore interface {
	// CreateIndices creates the per-model indices if missing.
	CreateIndices(ctx context.Context) error

	// DeleteIndices removes the per-model indices and all their documents.
	DeleteIndices(ctx context.Context) error

	// Status reports each index's existence and document count.
	Status(ctx context.Context) ([]IndexStatus, error)

	// PostRecord upserts one document keyed by its record id.
	PostRecord(ctx context.Context, doc Document) error

	// SearchPersons finds persons by name-embedding similarity.
	SearchPersons(ctx context.Context, vector []float32, limit int) ([]PersonHit, error)

	// Close releases the underlying connection.
	Close() error
}
